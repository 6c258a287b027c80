package extract

import "strings"

// Plan-name normalization. Each operator has a catalog: an exact-match map
// consulted first, then an ordered keyword list. Unmapped names pass through
// unchanged so callers never lose information.

type planKeyword struct {
	keyword   string
	canonical string
}

type planCatalog struct {
	exact    map[string]string
	keywords []planKeyword
}

var planCatalogs = map[Issuer]planCatalog{
	IssuerAmil: {
		exact: map[string]string{
			"AMIL 400":      "Amil 400",
			"AMIL 500":      "Amil 500",
			"AMIL 700":      "Amil 700",
			"AMIL ONE":      "Amil One",
			"AMIL FACIL":    "Amil Fácil",
			"MEDIAL SAUDE":  "Medial Saúde",
			"AMIL DENTAL":   "Amil Dental",
			"AMIL NACIONAL": "Amil Nacional",
		},
		keywords: []planKeyword{
			{"ONE", "Amil One"},
			{"FACIL", "Amil Fácil"},
			{"MEDIAL", "Medial Saúde"},
			{"DENTAL", "Amil Dental"},
		},
	},
	IssuerBradesco: {
		exact: map[string]string{
			"SAUDE TOP":      "Saúde Top",
			"SAUDE TOP PLUS": "Saúde Top Plus",
			"NACIONAL FLEX":  "Nacional Flex",
			"EFETIVO":        "Efetivo",
			"PREFERENCIAL":   "Preferencial Plus",
		},
		keywords: []planKeyword{
			{"TOP PLUS", "Saúde Top Plus"},
			{"TOP", "Saúde Top"},
			{"FLEX", "Nacional Flex"},
			{"EFETIVO", "Efetivo"},
			{"PREFERENCIAL", "Preferencial Plus"},
		},
	},
	IssuerSulAmerica: {
		exact: map[string]string{
			"ESPECIAL 100": "Especial 100",
			"EXECUTIVO":    "Executivo",
			"CLASSICO":     "Clássico",
			"BASICO":       "Básico",
			"PRESTIGE":     "Prestige",
			"EXATO":        "Exato",
		},
		keywords: []planKeyword{
			{"ESPECIAL", "Especial 100"},
			{"EXECUTIVO", "Executivo"},
			{"CLASSICO", "Clássico"},
			{"PRESTIGE", "Prestige"},
			{"EXATO", "Exato"},
		},
	},
	IssuerUnimed: {
		exact: map[string]string{
			"UNIPLAN":         "Uniplan",
			"UNIMAX":          "Unimax",
			"UNIFLEX":         "Uniflex",
			"NACIONAL":        "Nacional",
			"ESTADUAL":        "Estadual",
			"PLENO SAO PAULO": "Pleno São Paulo",
		},
		keywords: []planKeyword{
			{"UNIPLAN", "Uniplan"},
			{"UNIMAX", "Unimax"},
			{"UNIFLEX", "Uniflex"},
			{"NACIONAL", "Nacional"},
			{"ESTADUAL", "Estadual"},
		},
	},
	IssuerHapvida: {
		exact: map[string]string{
			"NOSSO PLANO": "Nosso Plano",
			"PLENO":       "Pleno",
			"MAIS":        "Mais",
			"MIX":         "Mix",
		},
		keywords: []planKeyword{
			{"NOSSO", "Nosso Plano"},
			{"PLENO", "Pleno"},
			{"MIX", "Mix"},
		},
	},
	IssuerNotreDame: {
		exact: map[string]string{
			"SMART":    "Smart",
			"ADVANCE":  "Advance",
			"PREMIUM":  "Premium",
			"INFINITY": "Infinity",
		},
		keywords: []planKeyword{
			{"SMART", "Smart"},
			{"ADVANCE", "Advance"},
			{"PREMIUM", "Premium"},
			{"INFINITY", "Infinity"},
		},
	},
	IssuerPortoSeguro: {
		exact: map[string]string{
			"BRONZE":   "Bronze",
			"PRATA":    "Prata",
			"OURO":     "Ouro",
			"DIAMANTE": "Diamante",
		},
		keywords: []planKeyword{
			{"BRONZE", "Bronze"},
			{"PRATA", "Prata"},
			{"OURO", "Ouro"},
			{"DIAMANTE", "Diamante"},
		},
	},
	IssuerGoldenCross: {
		exact: map[string]string{
			"ESSENCIAL": "Essencial",
			"CLASSICO":  "Clássico",
			"ESPECIAL":  "Especial",
		},
		keywords: []planKeyword{
			{"ESSENCIAL", "Essencial"},
			{"CLASSICO", "Clássico"},
			{"ESPECIAL", "Especial"},
		},
	},
}

// MapPlanName normalizes a free-text plan name to the operator's canonical
// catalog name: exact match first, then keyword match in catalog order.
// Unmapped names are returned unchanged.
func MapPlanName(issuer Issuer, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	catalog, ok := planCatalogs[issuer]
	if !ok {
		return raw
	}
	if canonical, ok := catalog.exact[raw]; ok {
		return canonical
	}
	for _, kw := range catalog.keywords {
		if strings.Contains(raw, kw.keyword) {
			return kw.canonical
		}
	}
	return raw
}
