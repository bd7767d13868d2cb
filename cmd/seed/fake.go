package main

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
)

var families = []string{"Ferretería", "Electricidad", "Fontanería", "Pintura", ""}

// fakeCatalog genera n productos de demostración; la misma semilla da el mismo catálogo.
func fakeCatalog(f *gofakeit.Faker, n int, now time.Time) []dto.CreateProductRequest {
	out := make([]dto.CreateProductRequest, 0, n)
	for i := 0; i < n; i++ {
		in := dto.CreateProductRequest{
			Name:         f.ProductName(),
			Reference:    f.Numerify("REF-#####"),
			Family:       f.RandomString(families),
			Unit:         f.RandomString([]string{"un", "kg", "m", "l"}),
			Price:        decimal.NewFromFloat(f.Price(0.5, 250)).Round(2),
			MinStock:     f.IntRange(0, 20),
			InitialStock: f.IntRange(0, 120),
		}
		// Uno de cada cinco caduca en los próximos meses.
		if f.IntRange(1, 5) == 1 {
			exp := now.AddDate(0, 0, f.IntRange(-5, 90))
			in.ExpiresAt = &exp
		}
		out = append(out, in)
	}
	return out
}

func fakeSupplier(f *gofakeit.Faker) dto.CreateSupplierRequest {
	return dto.CreateSupplierRequest{
		CompanyName:  f.Company(),
		ContactName:  f.Name(),
		Email:        f.Email(),
		Phone:        f.Phone(),
		TaxID:        f.Numerify("PT#########"),
		Address:      f.Address().Address,
		PaymentTerms: f.RandomString([]string{"30 días", "60 días", "contado"}),
		DeliveryTime: fmt.Sprintf("%d días", f.IntRange(1, 15)),
	}
}

func fakeClient(f *gofakeit.Faker) dto.ClientRequest {
	return dto.ClientRequest{
		Name:    f.Name(),
		Email:   f.Email(),
		Phone:   f.Phone(),
		Address: f.Address().Address,
		TaxID:   f.Numerify("#########"),
	}
}
