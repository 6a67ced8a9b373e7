package domain

// Locale identifies one of the display languages every record is kept in.
type Locale string

const (
	LocaleFA Locale = "fa"
	LocaleEN Locale = "en"
	LocaleZH Locale = "zh"
	LocaleRU Locale = "ru"
)

// Locales lists the supported locales in output order, primary first.
var Locales = []Locale{LocaleFA, LocaleEN, LocaleZH, LocaleRU}

// Instrument is a tracked currency or gold/coin identifier with its localized names.
type Instrument struct {
	ID    string
	Names map[Locale]string
}

// Name returns the display name for a locale, falling back to the ID.
func (i Instrument) Name(locale Locale) string {
	if n, ok := i.Names[locale]; ok && n != "" {
		return n
	}
	return i.ID
}

// Catalog is the closed set of tracked instruments, in report order.
var Catalog = []Instrument{
	{ID: "price_dollar_rl", Names: map[Locale]string{LocaleFA: "دلار آمریکا", LocaleEN: "US Dollar", LocaleZH: "美元", LocaleRU: "Доллар США"}},
	{ID: "price_eur", Names: map[Locale]string{LocaleFA: "یورو", LocaleEN: "Euro", LocaleZH: "欧元", LocaleRU: "Евро"}},
	{ID: "price_gbp", Names: map[Locale]string{LocaleFA: "پوند انگلیس", LocaleEN: "British Pound", LocaleZH: "英镑", LocaleRU: "Британский фунт"}},
	{ID: "price_aed", Names: map[Locale]string{LocaleFA: "درهم امارات", LocaleEN: "UAE Dirham", LocaleZH: "阿联酋迪拉姆", LocaleRU: "Дирхам ОАЭ"}},
	{ID: "price_try", Names: map[Locale]string{LocaleFA: "لیر ترکیه", LocaleEN: "Turkish Lira", LocaleZH: "土耳其里拉", LocaleRU: "Турецкая лира"}},
	{ID: "price_cny", Names: map[Locale]string{LocaleFA: "یوان چین", LocaleEN: "Chinese Yuan", LocaleZH: "人民币", LocaleRU: "Китайский юань"}},
	{ID: "price_rub", Names: map[Locale]string{LocaleFA: "روبل روسیه", LocaleEN: "Russian Rubles", LocaleZH: "俄罗斯卢布", LocaleRU: "Российский рубль"}},
	{ID: "price_kwd", Names: map[Locale]string{LocaleFA: "دینار کویت", LocaleEN: "Kuwaiti Dinar", LocaleZH: "科威特第纳尔", LocaleRU: "Кувейтский динар"}},
	{ID: "price_cad", Names: map[Locale]string{LocaleFA: "دلار کانادا", LocaleEN: "Canadian Dollar", LocaleZH: "加拿大元", LocaleRU: "Канадский доллар"}},
	{ID: "price_usdt", Names: map[Locale]string{LocaleFA: "تتر", LocaleEN: "Tether", LocaleZH: "泰达币", LocaleRU: "Тетер"}},
	{ID: "price_sekeb", Names: map[Locale]string{LocaleFA: "سکه بهار آزادی", LocaleEN: "Bahare Azadi Coin", LocaleZH: "巴哈雷自由币", LocaleRU: "Монета Бахар Азади"}},
	{ID: "price_nim", Names: map[Locale]string{LocaleFA: "نیم سکه", LocaleEN: "Half Coin", LocaleZH: "半枚硬币", LocaleRU: "Половина монеты"}},
	{ID: "price_rob", Names: map[Locale]string{LocaleFA: "ربع سکه", LocaleEN: "Quarter Coin", LocaleZH: "四分之一硬币", LocaleRU: "Четверть монеты"}},
	{ID: "price_geram18", Names: map[Locale]string{LocaleFA: "طلای 18 عیار", LocaleEN: "18K Gold", LocaleZH: "18K金", LocaleRU: "Золото 18 карат"}},
	{ID: "price_geram24", Names: map[Locale]string{LocaleFA: "طلای 24 عیار (مثقال)", LocaleEN: "24K Gold (Mesghal)", LocaleZH: "24K金（每盎司）", LocaleRU: "Золото 24 карата (Мескаль)"}},
	{ID: "price_ounce", Names: map[Locale]string{LocaleFA: "انس طلا", LocaleEN: "Gold Ounce", LocaleZH: "金盎司", LocaleRU: "Унция золота"}},
	{ID: "price_mesghal", Names: map[Locale]string{LocaleFA: "مثقال طلا", LocaleEN: "Mesghal Gold", LocaleZH: "金盎司（伊朗计量）", LocaleRU: "Мескаль золота"}},
}

// CatalogByID indexes Catalog by instrument ID.
var CatalogByID map[string]Instrument

func init() {
	CatalogByID = make(map[string]Instrument, len(Catalog))
	for _, inst := range Catalog {
		CatalogByID[inst.ID] = inst
	}
}

// LookupInstrument reports whether id is a tracked instrument.
func LookupInstrument(id string) (Instrument, bool) {
	inst, ok := CatalogByID[id]
	return inst, ok
}
