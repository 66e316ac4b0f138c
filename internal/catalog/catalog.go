// Package catalog holds the static demo product list. Artifact nodes in the
// scene are clickable only when their name has an entry here.
package catalog

// Product is one demo product card. Price stays a display string with the
// currency prefix; checkout parses it on demand.
type Product struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price string `json:"price"`
	Era   string `json:"era"`
	Short string `json:"short"`
}

// byObjectKey maps artifact node names to products. Keys follow the
// artifact_NN naming convention used by the scene author.
var byObjectKey = map[string]Product{
	"artifact_01": {
		ID:    "p01",
		Title: "Чайник для заваривания чая",
		Price: "€120",
		Era:   "Китай, предположительно XIX век",
		Short: "Традиционный чайник, выполненный в классической китайской манере. Лаконичная форма и следы времени указывают на предмет повседневного, но осознанного использования.",
	},
	"artifact_02": {
		ID:    "p02",
		Title: "Декоративная ваза",
		Price: "€180",
		Era:   "Восточная Азия, конец XIX — начало XX века",
		Short: "Керамическая ваза с сдержанным силуэтом. Небольшие неровности поверхности подчёркивают ручную работу и возраст предмета.",
	},
	"artifact_03": {
		ID:    "p03",
		Title: "Книга в старинном переплёте",
		Price: "€45",
		Era:   "Европа, XIX век",
		Short: "Издание в твёрдом переплёте, сохранившее характерные следы времени: потёртости, изменение цвета бумаги.",
	},
	"artifact_04": {
		ID:    "p04",
		Title: "Письменный стол",
		Price: "€70",
		Era:   "Европа, XIX век",
		Short: "Небольшой письменный стол, предназначенный для повседневной работы. Простота конструкции свидетельствует о практическом назначении предмета.",
	},
	"artifact_05": {
		ID:    "p05",
		Title: "Глобус учебный",
		Price: "€25",
		Era:   "Европа, конец XIX — начало XX века",
		Short: "Глобус, использовавшийся в образовательных целях. Географические обозначения отражают представления своего времени.",
	},
	"artifact_06": {
		ID:    "p06",
		Title: "Керамический фрагмент (демо)",
		Price: "€30",
		Era:   "Учебная коллекция",
		Short: "Осколок, который вызывает желание додумать целое.",
	},
	"artifact_07": {
		ID:    "p07",
		Title: "Миниатюра в рамке",
		Price: "€95",
		Era:   "Конец XIX века",
		Short: "Портрет, который «смотрит» дольше, чем принято.",
	},
	"artifact_08": {
		ID:    "p08",
		Title: "Компас/полевой инструмент",
		Price: "€110",
		Era:   "Начало XX века",
		Short: "Вещь, которая любит точность и руки.",
	},
	"artifact_09": {
		ID:    "p09",
		Title: "Записная книжка экспедиции (демо)",
		Price: "€40",
		Era:   "XX век",
		Short: "Страницы просят маршрут и карандаш.",
	},
	"artifact_10": {
		ID:    "p10",
		Title: "Футляр с украшением",
		Price: "€150",
		Era:   "Европа, конец XIX века",
		Short: "Подарок с «эффектом открытия».",
	},
}

// ByObjectKey returns the product mapped to an artifact node name.
func ByObjectKey(key string) (Product, bool) {
	p, ok := byObjectKey[key]
	return p, ok
}

// Has reports whether the artifact name has a catalog entry.
func Has(key string) bool {
	_, ok := byObjectKey[key]
	return ok
}

// Keys returns all registered artifact names, order unspecified.
func Keys() []string {
	out := make([]string, 0, len(byObjectKey))
	for k := range byObjectKey {
		out = append(out, k)
	}
	return out
}
