package staticplaceholder

// Form carries the submitted add/change form fields. The creation method is
// deliberately absent: it is set by the system and never editable.
type Form struct {
	Name string `form:"name" validate:"max=255"`
	Code string `form:"code" validate:"max=255"`
	// SiteID is parsed separately: the "all sites" choice submits an empty
	// value, which the form decoder cannot map onto a numeric field.
	SiteID *uint64 `form:"-"`
}

// Row is one rendered table row of the list view: the record ID plus the
// display values in column order.
type Row struct {
	ID      uint64
	Columns []string
}
