// Package main provides the entry point for the content-management admin
// application. It initializes and runs a web server using the Fiber framework
// that exposes an administrative interface for static placeholders and sites.
// Entity types are registered with an admin registry together with a view
// descriptor describing their list columns, search fields, filter facets and
// excluded form fields. The application uses gorm for data persistence.
package main
