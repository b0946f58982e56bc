package catalog

import "github.com/perkflow/perkflow/internal/model"

// Default returns the built-in provider catalogue. The table is data: adding
// a program means adding an entry here or shipping a catalogue file, never
// touching the matcher.
func Default() *Catalog {
	return MustNew(DefaultRules())
}

// DefaultRules returns the built-in rule table in catalogue order.
func DefaultRules() []ProviderRule {
	return []ProviderRule{
		// Airlines
		{
			ID:            "delta",
			DisplayName:   "Delta SkyMiles",
			Category:      model.CategoryMiles,
			SenderDomains: []string{"delta.com", "news.delta.com", "skymiles.com"},
			SubjectPatterns: []string{
				`skymiles statement`,
				`skymiles activity`,
				`miles earned`,
				`your delta flight`,
				`flight activity`,
			},
			BalancePatterns: []string{
				`(\d{1,3}(?:,\d{3})*)\s*skymiles`,
				`(\d{1,3}(?:,\d{3})*)\s*miles?\s*earned`,
				`earned\s*(\d{1,3}(?:,\d{3})*)\s*skymiles`,
				`skymiles balance[:\s]*([\d,]+)`,
				`you have ([\d,]+) skymiles`,
				`current balance[:\s]*([\d,]+) miles`,
				`\+\s*(\d{1,3}(?:,\d{3})*)\s*(?:sky)?miles`,
			},
			ContextPatterns: []string{
				`travel\s*date[:\s]*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`,
				`flight\s*on\s*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`,
			},
			ValuePerUnit: 0.012,
			Enabled:      true,
		},
		{
			ID:            "united",
			DisplayName:   "United MileagePlus",
			Category:      model.CategoryMiles,
			SenderDomains: []string{"united.com", "mileageplus.com"},
			SubjectPatterns: []string{
				`mileageplus activity`,
				`mileageplus statement`,
				`miles earned`,
				`flight activity`,
				`your united flight`,
			},
			BalancePatterns: []string{
				`(\d{1,3}(?:,\d{3})*)\s*(?:award\s*)?miles?\s*earned`,
				`earned\s*(\d{1,3}(?:,\d{3})*)\s*(?:award\s*)?miles`,
				`mileageplus balance[:\s]*([\d,]+)`,
				`you have ([\d,]+) miles`,
				`miles earned[:\s]+(\d{1,3}(?:,\d{3})*)`,
				`\+\s*(\d{1,3}(?:,\d{3})*)\s*miles`,
			},
			ContextPatterns: []string{
				`(?:flight|travel)\s*date[:\s]*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`,
				`(?:departed|departure)[:\s]*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`,
			},
			ValuePerUnit: 0.012,
			Enabled:      true,
		},
		{
			ID:            "american",
			DisplayName:   "American Airlines AAdvantage",
			Category:      model.CategoryMiles,
			SenderDomains: []string{"aa.com", "americanairlines.com", "aadvantage.com"},
			SubjectPatterns: []string{
				`aadvantage`,
				`miles earned`,
				`flight activity`,
				`your american airlines flight`,
			},
			BalancePatterns: []string{
				`(\d{1,3}(?:,\d{3})*)\s*(?:aadvantage\s*)?miles?\s*earned`,
				`earned\s*(\d{1,3}(?:,\d{3})*)\s*miles`,
				`aadvantage balance[:\s]*([\d,]+)`,
				`base miles[:\s]+(\d{1,3}(?:,\d{3})*)`,
				`miles balance[:\s]*([\d,]+)`,
			},
			ContextPatterns: []string{
				`departure\s*date[:\s]*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`,
				`travel\s*date[:\s]*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`,
			},
			ValuePerUnit: 0.012,
			Enabled:      true,
		},
		{
			ID:            "alaska",
			DisplayName:   "Alaska Airlines Mileage Plan",
			Category:      model.CategoryMiles,
			SenderDomains: []string{"alaskaair.com", "mileageplan.com"},
			SubjectPatterns: []string{
				`mileage plan`,
				`miles earned`,
				`alaska airlines flight`,
				`flight activity`,
			},
			BalancePatterns: []string{
				`(\d{1,3}(?:,\d{3})*)\s*miles?\s*earned`,
				`earned\s*(\d{1,3}(?:,\d{3})*)\s*miles`,
				`mileage plan balance[:\s]*([\d,]+)`,
				`miles balance[:\s]*([\d,]+)`,
			},
			ContextPatterns: []string{
				`flight\s*date[:\s]*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`,
			},
			ValuePerUnit: 0.018,
			Enabled:      true,
		},
		{
			ID:            "southwest",
			DisplayName:   "Southwest Rapid Rewards",
			Category:      model.CategoryCreditCardPoints,
			SenderDomains: []string{"southwest.com", "rapidrewards.com", "southwestvacations.com"},
			SubjectPatterns: []string{
				`rapid rewards`,
				`points earned`,
				`southwest flight`,
				`flight activity`,
			},
			BalancePatterns: []string{
				`(\d{1,3}(?:,\d{3})*)\s*(?:rapid\s*rewards\s*)?points?\s*earned`,
				`earned\s*(\d{1,3}(?:,\d{3})*)\s*points`,
				`rapid rewards balance[:\s]*([\d,]+)`,
				`points balance[:\s]*([\d,]+)`,
			},
			ContextPatterns: []string{
				`travel\s*date[:\s]*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`,
			},
			ValuePerUnit: 0.014,
			Enabled:      true,
		},
		{
			ID:            "jetblue",
			DisplayName:   "JetBlue TrueBlue",
			Category:      model.CategoryCreditCardPoints,
			SenderDomains: []string{"jetblue.com", "trueblue.jetblue.com"},
			SubjectPatterns: []string{
				`trueblue`,
				`points earned`,
				`jetblue flight`,
				`flight activity`,
			},
			BalancePatterns: []string{
				`(\d{1,3}(?:,\d{3})*)\s*(?:trueblue\s*)?points?\s*earned`,
				`earned\s*(\d{1,3}(?:,\d{3})*)\s*points`,
				`trueblue balance[:\s]*([\d,]+)`,
				`points balance[:\s]*([\d,]+)`,
			},
			ContextPatterns: []string{
				`travel\s*date[:\s]*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`,
			},
			ValuePerUnit: 0.013,
			Enabled:      true,
		},
		{
			ID:            "aircanada",
			DisplayName:   "Air Canada Aeroplan",
			Category:      model.CategoryMiles,
			SenderDomains: []string{"aircanada.com", "aeroplan.com"},
			SubjectPatterns: []string{
				`aeroplan`,
				`points earned`,
				`air canada flight`,
				`flight activity`,
			},
			BalancePatterns: []string{
				`(\d{1,3}(?:,\d{3})*)\s*(?:aeroplan\s*)?points?\s*earned`,
				`earned\s*(\d{1,3}(?:,\d{3})*)\s*points`,
				`\+\s*(\d{1,3}(?:,\d{3})*)\s*points`,
			},
			ContextPatterns: []string{
				`departure\s*date[:\s]*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`,
			},
			ValuePerUnit: 0.015,
			Enabled:      true,
		},
		{
			ID:            "spirit",
			DisplayName:   "Spirit Free Spirit",
			Category:      model.CategoryMiles,
			SenderDomains: []string{"spirit.com"},
			SubjectPatterns: []string{
				`free spirit`,
				`points earned`,
				`spirit flight`,
			},
			BalancePatterns: []string{
				`(\d{1,3}(?:,\d{3})*)\s*points?\s*earned`,
				`earned\s*(\d{1,3}(?:,\d{3})*)\s*points`,
			},
			ContextPatterns: []string{
				`travel\s*date[:\s]*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`,
			},
			ValuePerUnit: 0.008,
			Enabled:      true,
		},
		{
			ID:            "frontier",
			DisplayName:   "Frontier Miles",
			Category:      model.CategoryMiles,
			SenderDomains: []string{"flyfrontier.com"},
			SubjectPatterns: []string{
				`frontier miles`,
				`miles earned`,
				`frontier flight`,
			},
			BalancePatterns: []string{
				`(\d{1,3}(?:,\d{3})*)\s*miles?\s*earned`,
				`earned\s*(\d{1,3}(?:,\d{3})*)\s*miles`,
			},
			ContextPatterns: []string{
				`travel\s*date[:\s]*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`,
			},
			ValuePerUnit: 0.008,
			Enabled:      true,
		},
		{
			ID:            "emirates",
			DisplayName:   "Emirates Skywards",
			Category:      model.CategoryMiles,
			SenderDomains: []string{"emirates.com", "skywards.com"},
			SubjectPatterns: []string{
				`skywards`,
				`miles earned`,
				`emirates flight`,
			},
			BalancePatterns: []string{
				`(\d{1,3}(?:,\d{3})*)\s*skywards\s*miles?\s*earned`,
				`earned\s*(\d{1,3}(?:,\d{3})*)\s*miles`,
			},
			ContextPatterns: []string{
				`travel\s*date[:\s]*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`,
			},
			ValuePerUnit: 0.01,
			Enabled:      false,
		},
		{
			ID:            "lufthansa",
			DisplayName:   "Lufthansa Miles & More",
			Category:      model.CategoryMiles,
			SenderDomains: []string{"lufthansa.com", "miles-and-more.com"},
			SubjectPatterns: []string{
				`miles & more`,
				`miles earned`,
				`lufthansa flight`,
			},
			BalancePatterns: []string{
				`(\d{1,3}(?:,\d{3})*)\s*(?:award\s*)?miles?\s*earned`,
				`earned\s*(\d{1,3}(?:,\d{3})*)\s*miles`,
			},
			ContextPatterns: []string{
				`travel\s*date[:\s]*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`,
			},
			ValuePerUnit: 0.012,
			Enabled:      false,
		},
		{
			ID:            "britishairways",
			DisplayName:   "British Airways Avios",
			Category:      model.CategoryMiles,
			SenderDomains: []string{"britishairways.com", "ba.com"},
			SubjectPatterns: []string{
				`avios`,
				`points earned`,
				`british airways flight`,
			},
			BalancePatterns: []string{
				`(\d{1,3}(?:,\d{3})*)\s*avios\s*earned`,
				`earned\s*(\d{1,3}(?:,\d{3})*)\s*avios`,
			},
			ContextPatterns: []string{
				`travel\s*date[:\s]*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`,
			},
			ValuePerUnit: 0.013,
			Enabled:      false,
		},

		// Hotels
		{
			ID:            "marriott",
			DisplayName:   "Marriott Bonvoy",
			Category:      model.CategoryHotelPoints,
			SenderDomains: []string{"marriott.com", "marriottbonvoy.com"},
			SubjectPatterns: []string{
				`bonvoy`,
				`points earned`,
				`your stay`,
			},
			BalancePatterns: []string{
				`bonvoy balance[:\s]*([\d,]+)`,
				`you have ([\d,]+) points`,
				`current point balance[:\s]*([\d,]+)`,
				`points balance[:\s]*([\d,]+)`,
			},
			ValuePerUnit: 0.008,
			Enabled:      true,
		},
		{
			ID:            "hilton",
			DisplayName:   "Hilton Honors",
			Category:      model.CategoryHotelPoints,
			SenderDomains: []string{"hilton.com", "hiltonhonors.com"},
			SubjectPatterns: []string{
				`hilton honors`,
				`points earned`,
				`your stay`,
			},
			BalancePatterns: []string{
				`honors balance[:\s]*([\d,]+)`,
				`you have ([\d,]+) points`,
				`points balance[:\s]*([\d,]+)`,
			},
			ValuePerUnit: 0.005,
			Enabled:      true,
		},
		{
			ID:            "hyatt",
			DisplayName:   "World of Hyatt",
			Category:      model.CategoryHotelPoints,
			SenderDomains: []string{"hyatt.com"},
			SubjectPatterns: []string{
				`world of hyatt`,
				`points earned`,
			},
			BalancePatterns: []string{
				`world of hyatt balance[:\s]*([\d,]+)`,
				`you have ([\d,]+) points`,
				`points balance[:\s]*([\d,]+)`,
			},
			ValuePerUnit: 0.017,
			Enabled:      true,
		},
		{
			ID:            "ihg",
			DisplayName:   "IHG One Rewards",
			Category:      model.CategoryHotelPoints,
			SenderDomains: []string{"ihg.com"},
			SubjectPatterns: []string{
				`ihg one rewards`,
				`points earned`,
			},
			BalancePatterns: []string{
				`ihg.*?balance[:\s]*([\d,]+)`,
				`you have ([\d,]+) points`,
				`points balance[:\s]*([\d,]+)`,
			},
			ValuePerUnit: 0.005,
			Enabled:      true,
		},
		{
			ID:            "wyndham",
			DisplayName:   "Wyndham Rewards",
			Category:      model.CategoryHotelPoints,
			SenderDomains: []string{"wyndhamhotels.com"},
			SubjectPatterns: []string{
				`wyndham rewards`,
				`points earned`,
			},
			BalancePatterns: []string{
				`wyndham.*?balance[:\s]*([\d,]+)`,
				`you have ([\d,]+) points`,
				`points balance[:\s]*([\d,]+)`,
			},
			ValuePerUnit: 0.009,
			Enabled:      true,
		},
		{
			ID:            "choice",
			DisplayName:   "Choice Privileges",
			Category:      model.CategoryHotelPoints,
			SenderDomains: []string{"choicehotels.com"},
			SubjectPatterns: []string{
				`choice privileges`,
				`points earned`,
			},
			BalancePatterns: []string{
				`choice.*?balance[:\s]*([\d,]+)`,
				`you have ([\d,]+) points`,
				`points balance[:\s]*([\d,]+)`,
			},
			ValuePerUnit: 0.006,
			Enabled:      true,
		},

		// Credit cards
		{
			ID:            "chase",
			DisplayName:   "Chase Ultimate Rewards",
			Category:      model.CategoryCreditCardPoints,
			SenderDomains: []string{"chase.com"},
			SubjectPatterns: []string{
				`ultimate rewards`,
				`points earned`,
				`rewards statement`,
			},
			BalancePatterns: []string{
				`ultimate rewards balance[:\s]*([\d,]+)`,
				`you have ([\d,]+) points`,
				`ur points[:\s]*([\d,]+)`,
				`points balance[:\s]*([\d,]+)`,
			},
			ValuePerUnit: 0.0125,
			Enabled:      true,
		},
		{
			ID:            "amex",
			DisplayName:   "American Express Membership Rewards",
			Category:      model.CategoryCreditCardPoints,
			SenderDomains: []string{"americanexpress.com", "aexp.com"},
			SubjectPatterns: []string{
				`membership rewards`,
				`points earned`,
				`rewards statement`,
			},
			BalancePatterns: []string{
				`membership rewards balance[:\s]*([\d,]+)`,
				`you have ([\d,]+) points`,
				`mr points[:\s]*([\d,]+)`,
				`points balance[:\s]*([\d,]+)`,
			},
			ValuePerUnit: 0.01,
			Enabled:      true,
		},
		{
			ID:            "citi",
			DisplayName:   "Citi ThankYou Points",
			Category:      model.CategoryCreditCardPoints,
			SenderDomains: []string{"citi.com", "citibank.com"},
			SubjectPatterns: []string{
				`thankyou points`,
				`points earned`,
				`rewards statement`,
			},
			BalancePatterns: []string{
				`thankyou.*?balance[:\s]*([\d,]+)`,
				`you have ([\d,]+) points`,
				`points balance[:\s]*([\d,]+)`,
			},
			ValuePerUnit: 0.01,
			Enabled:      true,
		},
		{
			ID:            "capitalone",
			DisplayName:   "Capital One Venture Miles",
			Category:      model.CategoryMiles,
			SenderDomains: []string{"capitalone.com"},
			SubjectPatterns: []string{
				`venture miles`,
				`miles earned`,
				`rewards statement`,
			},
			BalancePatterns: []string{
				`venture.*?balance[:\s]*([\d,]+)`,
				`you have ([\d,]+) miles`,
				`miles balance[:\s]*([\d,]+)`,
			},
			ValuePerUnit: 0.01,
			Enabled:      true,
		},

		// Cash back. Captures are dollars; UnitScale stores them as cents.
		{
			ID:            "discover",
			DisplayName:   "Discover Cashback",
			Category:      model.CategoryCashBack,
			SenderDomains: []string{"discover.com"},
			SubjectPatterns: []string{
				`cashback bonus`,
				`cash back`,
				`rewards statement`,
			},
			BalancePatterns: []string{
				`cashback.*?balance[:\s]*\$?([\d,]+)`,
				`you have \$?([\d,]+) cashback`,
				`cash back balance[:\s]*\$?([\d,]+)`,
			},
			ValuePerUnit: 0.01,
			UnitScale:    100,
			Enabled:      true,
		},
	}
}
