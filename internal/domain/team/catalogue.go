package team

// Catalogue returns the qualified teams ordered by FIFA rank.
func Catalogue() []Team {
	out := make([]Team, len(catalogue))
	copy(out, catalogue)
	return out
}

var catalogue = []Team{
	{Name: "Spain", Confederation: ConfederationUEFA, FIFARank: 1, WorldCupTitles: 1, FlagCode: "es"},
	{Name: "Argentina", Confederation: ConfederationCONMEBOL, FIFARank: 2, WorldCupTitles: 3, FlagCode: "ar"},
	{Name: "France", Confederation: ConfederationUEFA, FIFARank: 3, WorldCupTitles: 2, FlagCode: "fr"},
	{Name: "England", Confederation: ConfederationUEFA, FIFARank: 4, WorldCupTitles: 1, FlagCode: "gb-eng"},
	{Name: "Brazil", Confederation: ConfederationCONMEBOL, FIFARank: 5, WorldCupTitles: 5, FlagCode: "br"},
	{Name: "Portugal", Confederation: ConfederationUEFA, FIFARank: 6, FlagCode: "pt"},
	{Name: "Netherlands", Confederation: ConfederationUEFA, FIFARank: 7, FlagCode: "nl"},
	{Name: "Belgium", Confederation: ConfederationUEFA, FIFARank: 8, FlagCode: "be"},
	{Name: "Germany", Confederation: ConfederationUEFA, FIFARank: 9, WorldCupTitles: 4, FlagCode: "de"},
	{Name: "Croatia", Confederation: ConfederationUEFA, FIFARank: 10, FlagCode: "hr"},
	{Name: "Morocco", Confederation: ConfederationCAF, FIFARank: 11, FlagCode: "ma"},
	{Name: "Colombia", Confederation: ConfederationCONMEBOL, FIFARank: 12, FlagCode: "co"},
	{Name: "United States", Confederation: ConfederationCONCACAF, FIFARank: 13, FlagCode: "us"},
	{Name: "Mexico", Confederation: ConfederationCONCACAF, FIFARank: 14, FlagCode: "mx"},
	{Name: "Uruguay", Confederation: ConfederationCONMEBOL, FIFARank: 15, WorldCupTitles: 2, FlagCode: "uy"},
	{Name: "Switzerland", Confederation: ConfederationUEFA, FIFARank: 16, FlagCode: "ch"},
	{Name: "Japan", Confederation: ConfederationAFC, FIFARank: 17, FlagCode: "jp"},
	{Name: "Senegal", Confederation: ConfederationCAF, FIFARank: 18, FlagCode: "sn"},
	{Name: "Iran", Confederation: ConfederationAFC, FIFARank: 19, FlagCode: "ir"},
	{Name: "South Korea", Confederation: ConfederationAFC, FIFARank: 20, FlagCode: "kr"},
	{Name: "Ecuador", Confederation: ConfederationCONMEBOL, FIFARank: 21, FlagCode: "ec"},
	{Name: "Austria", Confederation: ConfederationUEFA, FIFARank: 22, FlagCode: "at"},
	{Name: "Australia", Confederation: ConfederationAFC, FIFARank: 23, FlagCode: "au"},
	{Name: "Canada", Confederation: ConfederationCONCACAF, FIFARank: 24, FlagCode: "ca"},
	{Name: "Norway", Confederation: ConfederationUEFA, FIFARank: 25, FlagCode: "no"},
	{Name: "Panama", Confederation: ConfederationCONCACAF, FIFARank: 26, FlagCode: "pa"},
	{Name: "Egypt", Confederation: ConfederationCAF, FIFARank: 27, FlagCode: "eg"},
	{Name: "Algeria", Confederation: ConfederationCAF, FIFARank: 28, FlagCode: "dz"},
	{Name: "Scotland", Confederation: ConfederationUEFA, FIFARank: 29, FlagCode: "gb-sct"},
	{Name: "Paraguay", Confederation: ConfederationCONMEBOL, FIFARank: 30, FlagCode: "py"},
	{Name: "Tunisia", Confederation: ConfederationCAF, FIFARank: 31, FlagCode: "tn"},
	{Name: "Ivory Coast", Confederation: ConfederationCAF, FIFARank: 32, FlagCode: "ci"},
	{Name: "Uzbekistan", Confederation: ConfederationAFC, FIFARank: 33, FlagCode: "uz"},
	{Name: "Qatar", Confederation: ConfederationAFC, FIFARank: 34, FlagCode: "qa"},
	{Name: "Saudi Arabia", Confederation: ConfederationAFC, FIFARank: 35, FlagCode: "sa"},
	{Name: "South Africa", Confederation: ConfederationCAF, FIFARank: 36, FlagCode: "za"},
	{Name: "Jordan", Confederation: ConfederationAFC, FIFARank: 37, FlagCode: "jo"},
	{Name: "Cape Verde", Confederation: ConfederationCAF, FIFARank: 38, FlagCode: "cv"},
	{Name: "Ghana", Confederation: ConfederationCAF, FIFARank: 39, FlagCode: "gh"},
	{Name: "Curaçao", Confederation: ConfederationCONCACAF, FIFARank: 40, FlagCode: "cw"},
	{Name: "Haiti", Confederation: ConfederationCONCACAF, FIFARank: 41, FlagCode: "ht"},
	{Name: "New Zealand", Confederation: ConfederationOFC, FIFARank: 42, FlagCode: "nz"},
}

func init() {
	for i := range catalogue {
		catalogue[i].RecentForm = DefaultRecentForm
	}
}
