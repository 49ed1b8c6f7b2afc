package repository

import "business-console/internal/entity"

// defaultUser is the business info shown until the profile says otherwise.
var defaultUser = entity.User{
	BusinessName:    "My Business",
	BusinessAddress: "",
	BusinessContact: "",
	Currency:        "USD",
	ProfilePicture:  "",
}

// DefaultDataset builds the sample data a new tenant starts with. Every call
// returns fresh slices.
func DefaultDataset() *entity.Dataset {
	return &entity.Dataset{
		Products: []entity.Product{
			{ID: "prod-1", Name: "Argan Oil Shampoo", Category: "Hair care", Price: 14.5, Cost: 6, Stock: 40},
			{ID: "prod-2", Name: "Edge Control Gel", Category: "Styling", Price: 8, Cost: 3.2, Stock: 25},
		},
		Wigs: []entity.Wig{
			{ID: "wig-1", Name: "Body Wave Lace Front", Type: "Lace front", Length: "18in", Color: "Natural black", Price: 180, Stock: 5},
			{ID: "wig-2", Name: "Kinky Straight Closure", Type: "Closure", Length: "14in", Color: "1B", Price: 140, Stock: 3},
		},
		Pastries: []entity.Pastry{
			{ID: "pastry-1", Name: "Butter Croissant", Price: 2.5, Stock: 30},
			{ID: "pastry-2", Name: "Meat Pie", Price: 3, Stock: 20},
		},
		Sales:     []entity.Sale{},
		Customers: []entity.Customer{},
		Orders:    []entity.Order{},
		Debts:     []entity.Debt{},
		Invoices:  []entity.Invoice{},
		Showcase: []entity.ShowcaseItem{
			{ID: "sc-1", Name: "Body Wave Lace Front", Price: 180, Description: "Pre-plucked 18in body wave unit.", ImageURL: "/images/showcase/body-wave.jpg", Published: true},
			{ID: "sc-2", Name: "Butter Croissant Box", Price: 12, Description: "Six croissants baked this morning.", ImageURL: "/images/showcase/croissants.jpg", Published: false},
		},
		CompanyStory: []entity.StorySection{
			{ID: "story-1", Title: "Our story", Content: "We started selling from a single market stall and never looked back."},
		},
		Testimonials: []entity.Testimonial{
			{ID: "testimonial-1", Author: "A happy customer", Content: "Fast delivery and great quality.", Rating: 5},
		},
		AdvertisingPhrases: []entity.AdvertisingPhrase{
			{ID: "phrase-1", Text: "Quality you can see."},
			{ID: "phrase-2", Text: "Fresh every morning."},
		},
		User: defaultUser,
	}
}
