package seed

import (
	"fmt"
	"strings"

	"classifieds/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	adTypes    = []string{"sale", "purchase", "exchange", "service"}
	categories = []string{"transport", "electronics", "furniture", "clothing", "sport", "property", "pets", "hobby"}
)

// Factory builds domain entities from a faker. It does not touch the database.
type Factory struct {
	faker *gofakeit.Faker
}

// NewFactory returns a Factory driven by seed. A zero seed picks a random one.
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed)}
}

// BuildUser returns an unsaved user. Usernames carry n so a batch never collides.
func (f *Factory) BuildUser(n int, passwordHash string) *models.User {
	name := strings.ToLower(f.faker.FirstName())
	return &models.User{
		Username: fmt.Sprintf("%s_%d", name, n),
		Email:    fmt.Sprintf("%s.%d@%s", name, n, f.faker.DomainName()),
		Password: passwordHash,
	}
}

// BuildAdvertisement returns an unsaved listing owned by owner.
func (f *Factory) BuildAdvertisement(owner *models.User) *models.Advertisement {
	ad := &models.Advertisement{OwnerID: owner.ID}
	models.AdvertisementFields{
		Title:       capitalize(f.faker.AdjectiveDescriptive() + " " + f.faker.NounCommon()),
		Description: f.faker.Paragraph(1, 2, 8, " "),
		Type:        f.faker.RandomString(adTypes),
		Category:    f.faker.RandomString(categories),
		Price:       fmt.Sprintf("%.2f", f.faker.Price(1, 5000)),
		Location:    f.faker.City(),
	}.Apply(ad)
	return ad
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
