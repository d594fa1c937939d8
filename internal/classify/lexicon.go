package classify

// seedLexicon is the hand-curated keyword lexicon, keyed by category.
// All entries are lowercase; phrases are matched against n-grams.
// The classifier copies this at construction so learned keywords never
// leak between instances.
var seedLexicon = map[string][]string{
	"Groceries": {
		"grocery", "groceries", "veggies", "vegetables", "kirana", "supermarket",
		"big bazaar", "dmart", "more", "reliance fresh", "milk", "ration", "provision", "amazon min",
	},
	"Food & Drinks": {
		"food", "lunch", "dinner", "breakfast", "snacks", "drink", "beverage",
		"tea", "coffee", "swiggy", "zomato", "restaurant", "pizza", "burger", "pasta",
		"biriyani", "biryani", "juice", "cafe", "hotel food",
	},
	"Furniture": {
		"furniture", "sofa", "chair", "table", "bed", "mattress", "cupboard",
		"wardrobe", "dining", "desk", "cot", "almirah", "ikea",
	},
	"Rent": {
		"rent", "house rent", "room rent", "lease", "pg", "hostel fees", "maintenance charges",
	},
	"Water": {
		"water", "water bill", "borewell", "can water", "bisleri", "aqua", "mineral water", "bwssb",
	},
	"Gifts": {
		"gift", "present", "birthday gift", "wedding gift", "anniversary gift", "hamper", "return gift",
	},
	"Medical": {
		"medical", "medicine", "pharmacy", "chemist", "tablet", "syrup", "doctor", "clinic",
		"hospital", "diagnostic", "pathology", "blood test", "scan", "rx", "labtest", "apollo", "1mg",
	},
	"Maintenance": {
		"maintenance", "repair", "service", "fix", "plumber", "electrician", "cleaning",
		"housekeeping", "painting", "ac service", "amc", "car service", "bike service",
	},
	"Travel": {
		"travel", "cab", "taxi", "bus", "train", "flight", "air", "uber", "ola", "rapido",
		"metro", "petrol", "diesel", "fuel", "toll", "ticket", "hotel", "booking", "stay",
	},
	"Movies": {
		"movie", "film", "cinema", "theatre", "theater", "pvr", "inox", "bookmyshow", "bms",
		"netflix", "amazon prime", "prime video", "hotstar", "ott",
	},
	"Electricity": {
		"electricity", "power bill", "electric bill", "current bill", "energy bill",
		"bescom", "tneb", "kseb", "mseb", "mpev", "kesc", "pspcl",
	},
	"Donation": {
		"donation", "charity", "zakat", "tithe", "ngo", "temple", "church", "mosque", "relief fund", "donate",
	},
	"General": {
		"shopping", "purchase", "online", "order", "upi", "misc", "general", "others",
	},
}

// hardRules maps categories to high-precision trigger keywords. These are
// checked before any fuzzy scoring, in model.Categories order; the first
// category with a hit wins outright.
var hardRules = map[string][]string{
	"Groceries":     {"grocery", "groceries", "kirana", "supermarket", "ration", "dmart", "reliance fresh", "big bazaar", "more"},
	"Food & Drinks": {"swiggy", "zomato", "restaurant", "lunch", "dinner", "breakfast", "snacks", "tea", "coffee", "cafe"},
	"Electricity":   {"bescom", "tneb", "kseb", "electricity", "power bill", "current bill", "energy bill"},
	"Water":         {"bwssb", "water bill", "bisleri", "can water", "aquaguard", "aqua"},
	"Travel":        {"uber", "ola", "rapido", "metro", "flight", "train", "cab", "taxi", "irctc", "ticket", "hotel"},
	"Movies":        {"bookmyshow", "bms", "pvr", "inox", "cinema", "movie", "netflix", "hotstar", "prime"},
	"Rent":          {"rent", "house rent", "room rent", "pg", "lease", "hostel fees"},
	"Donation":      {"donation", "charity", "ngo", "zakat", "tithe"},
	"Medical":       {"pharmacy", "chemist", "medicine", "tablet", "syrup", "rx", "hospital", "clinic", "diagnostic", "labtest", "blood test", "scan", "1mg", "apollo"},
}

// stopWords are filler words the typo corrector never snaps to keywords.
var stopWords = []string{
	"the", "a", "an", "to", "for", "with", "and", "on", "in", "by", "via", "of",
	"bill", "fees", "paid", "payment", "online", "upi", "from",
}

// genericWords are excluded from feedback learning regardless of length.
var genericWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "bill": {}, "fees": {},
	"paid": {}, "payment": {}, "online": {}, "upi": {}, "to": {}, "from": {},
	"via": {}, "by": {},
}

// categoryPrior returns the fixed score prior for a category.
func categoryPrior(category string) float64 {
	switch category {
	case "General":
		return -0.15
	case "Medical", "Gifts":
		return -0.05
	default:
		return 0.0
	}
}
