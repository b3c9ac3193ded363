package catalog

import "github.com/nisantasi/storefront/internal/models"

// sampleProducts is the static product catalog. There is no product database;
// the catalog ships with the binary.
var sampleProducts = []models.Product{
	{
		ID:            "1",
		Name:          "Klasik Siyah Deri Babet",
		Price:         899.90,
		OriginalPrice: 1199.90,
		Images:        []string{"/product-1.jpg"},
		Colors:        []string{"#000000", "#1f2937", "#374151"},
		Category:      "babet",
		Sizes:         []string{"36", "37", "38", "39", "40"},
		Description:   "Günlük kullanım için ideal, konforlu siyah deri babet",
		InStock:       true,
		IsNew:         false,
		Rating:        4.5,
		ReviewCount:   127,
	},
	{
		ID:            "2",
		Name:          "Beyaz Minimal Babet",
		Price:         799.90,
		OriginalPrice: 999.90,
		Images:        []string{"/product-2.jpg"},
		Colors:        []string{"#ffffff", "#f9fafb"},
		Category:      "babet",
		Sizes:         []string{"35", "36", "37", "38", "39"},
		Description:   "Minimalist tasarım, beyaz renk babet ayakkabı",
		InStock:       true,
		IsNew:         true,
		Rating:        4.8,
		ReviewCount:   89,
	},
	{
		ID:            "3",
		Name:          "Gri Klasik Babet",
		Price:         699.90,
		OriginalPrice: 899.90,
		Images:        []string{"/product-4.jpg"},
		Colors:        []string{"#6b7280", "#4b5563"},
		Category:      "babet",
		Sizes:         []string{"36", "37", "38", "39"},
		Description:   "Şık gri renkte, her kombine uygun babet",
		InStock:       false,
		IsNew:         false,
		Rating:        4.3,
		ReviewCount:   78,
	},
	{
		ID:          "4",
		Name:        "Siyah Oxford Deri Ayakkabı",
		Price:       1599.90,
		Images:      []string{"/product-3.jpg"},
		Colors:      []string{"#000000", "#1f2937"},
		Category:    "oxford",
		Sizes:       []string{"38", "39", "40", "41", "42"},
		Description: "Profesyonel görünüm için klasik oxford ayakkabı",
		InStock:     true,
		IsNew:       false,
		Rating:      4.7,
		ReviewCount: 156,
	},
	{
		ID:          "5",
		Name:        "Kahverengi Oxford Ayakkabı",
		Price:       1799.90,
		Images:      []string{"/product-6.jpg"},
		Colors:      []string{"#6b4423", "#8b5a2b"},
		Category:    "oxford",
		Sizes:       []string{"39", "40", "41", "42", "43"},
		Description: "El yapımı kahverengi deri oxford ayakkabı",
		InStock:     true,
		IsNew:       false,
		Rating:      4.6,
		ReviewCount: 92,
	},
	{
		ID:            "6",
		Name:          "Siyah Evening Heels",
		Price:         1299.90,
		OriginalPrice: 1599.90,
		Images:        []string{"/product-5.jpg"},
		Colors:        []string{"#000000", "#111827"},
		Category:      "topuklu",
		Sizes:         []string{"35", "36", "37", "38", "39", "40"},
		Description:   "Özel geceler için zarif topuklu ayakkabı",
		InStock:       true,
		IsNew:         true,
		Rating:        4.9,
		ReviewCount:   203,
	},
}

// Categories maps category slugs to display metadata.
var Categories = map[string]CategoryInfo{
	"babet":   {Title: "Babet Ayakkabılar", Description: "Şıklık ve konforun buluştuğu, günlük kullanım için ideal babet modelleri"},
	"oxford":  {Title: "Oxford Ayakkabılar", Description: "Klasik ve modern tasarımların birleştiği, profesyonel görünüm için oxford modelleri"},
	"topuklu": {Title: "Topuklu Ayakkabılar", Description: "Özel günleriniz için zarif ve şık topuklu ayakkabı modelleri"},
	"terlik":  {Title: "Terlik Modelleri", Description: "Ev rahatlığını yaşatan, konforlu terlik çeşitleri"},
	"sandalet": {Title: "Sandalet Koleksiyonu", Description: "Yaz aylarının vazgeçilmezi, ferah ve şık sandalet modelleri"},
	"spor":    {Title: "Spor Ayakkabılar", Description: "Aktif yaşamınızın destekçisi, konforlu spor ayakkabı modelleri"},
}

// CategoryInfo holds display metadata for a category page.
type CategoryInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
