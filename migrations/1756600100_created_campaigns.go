package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("campaigns")

		collection.Fields.Add(
			&core.TextField{
				Name:     "name",
				Required: true,
			},
			&core.DateField{
				Name:     "date",
				Required: true,
			},
			&core.TextField{
				Name: "start_time",
			},
			&core.TextField{
				Name: "end_time",
			},
			&core.TextField{
				Name: "location",
			},
			&core.NumberField{
				Name:    "slots_available",
				OnlyInt: true,
			},
			&core.NumberField{
				Name:    "number_adverts",
				OnlyInt: true,
			},
			&core.NumberField{
				Name: "price",
			},
			&core.AutodateField{
				Name:     "created",
				OnCreate: true,
			},
			&core.AutodateField{
				Name:     "updated",
				OnCreate: true,
				OnUpdate: true,
			},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("campaigns")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
