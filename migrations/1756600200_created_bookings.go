package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("bookings")

		collection.Fields.Add(
			&core.TextField{
				Name:     "reference",
				Required: true,
			},
			&core.TextField{
				Name:     "campaign_id",
				Required: true,
			},
			&core.TextField{
				Name:     "customer_name",
				Required: true,
			},
			&core.EmailField{
				Name:     "customer_email",
				Required: true,
			},
			&core.TextField{
				Name:     "customer_phone",
				Required: true,
			},
			&core.TextField{
				Name: "company",
			},
			&core.TextField{
				Name: "requirements",
			},
			&core.NumberField{
				Name:     "slots_required",
				OnlyInt:  true,
				Required: true,
			},
			&core.NumberField{
				Name: "total_price",
			},
			&core.SelectField{
				Name:      "status",
				MaxSelect: 1,
				Values: []string{
					"pending",
					"confirmed",
					"cancelled",
				},
			},
			&core.SelectField{
				Name:      "payment_status",
				MaxSelect: 1,
				Values: []string{
					"pending",
					"paid",
					"failed",
					"refunded",
				},
			},
			&core.BoolField{
				Name: "contract_signed",
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
		collection, err := app.FindCollectionByNameOrId("bookings")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
