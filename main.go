package main

import (
	"os"

	"github.com/vipulnarang95/django-cms/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
