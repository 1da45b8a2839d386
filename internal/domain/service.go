package domain

// Service is a photo session offered by the studio.
type Service struct {
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	StartingPrice Decimal  `json:"starting_price"`
	Currency      string   `json:"currency"`
	Features      []string `json:"features"`
}

const CurrencyUAH = "UAH"

func newService(slug, title, description string, price string, features ...string) Service {
	return Service{
		Slug:          slug,
		Title:         title,
		Description:   description,
		StartingPrice: mustDecimal(price),
		Currency:      CurrencyUAH,
		Features:      features,
	}
}

// DefaultServices returns the studio's service catalog in display order.
func DefaultServices() []Service {
	return []Service{
		newService("portrait", "Портретна фотосесія",
			"Індивідуальні та групові портрети з професійним освітленням", "1500.00",
			"30+ оброблених фото", "2 години зйомки", "Різні образи"),
		newService("wedding", "Весільна фотосесія",
			"Незабутні моменти вашого найважливішого дня", "8000.00",
			"Повний день зйомки", "300+ фото", "Відеосупровід"),
		newService("corporate", "Корпоративна зйомка",
			"Професійні фото для бізнесу та соціальних мереж", "2500.00",
			"Бізнес-портрети", "Командні фото", "Брендинг"),
		newService("family", "Сімейна фотосесія",
			"Теплі сімейні моменти в затишній атмосфері", "2000.00",
			"Всі члени родини", "50+ фото", "Домашня атмосфера"),
		newService("kids", "Дитяча фотосесія",
			"Милі та природні знімки ваших малюків", "1800.00",
			"Ігрова форма", "Батьки в кадрі", "Безпечно для дітей"),
		newService("fashion", "Fashion фотосесія",
			"Стильні та креативні fashion-зйомки", "3000.00",
			"Стиліст включено", "Різні локації", "Ретуш високої якості"),
	}
}

// FindService looks a service up by slug.
func FindService(services []Service, slug string) (Service, bool) {
	for _, s := range services {
		if s.Slug == slug {
			return s, true
		}
	}
	return Service{}, false
}

// LowestStartingPrice returns the cheapest starting price, or Zero for an
// empty catalog.
func LowestStartingPrice(services []Service) Decimal {
	if len(services) == 0 {
		return Zero
	}
	lowest := services[0].StartingPrice
	for _, s := range services[1:] {
		if s.StartingPrice.Cmp(lowest) < 0 {
			lowest = s.StartingPrice
		}
	}
	return lowest
}
