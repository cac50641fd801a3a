package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeedDriver é um piloto do grid 2025 com a cotação base de vitória.
// Podium e pole são derivadas da base na importação.
type SeedDriver struct {
	Driver
	BaseOdds decimal.Decimal
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Drivers2025 é o grid completo da temporada 2025
var Drivers2025 = []SeedDriver{
	{Driver{Name: "Max Verstappen", Team: "Red Bull Racing", Country: "Netherlands", Flag: "🇳🇱", Number: 1}, dec("2.50")},
	{Driver{Name: "Lando Norris", Team: "McLaren", Country: "United Kingdom", Flag: "🇬🇧", Number: 4}, dec("3.00")},
	{Driver{Name: "Oscar Piastri", Team: "McLaren", Country: "Australia", Flag: "🇦🇺", Number: 81}, dec("4.50")},
	{Driver{Name: "Charles Leclerc", Team: "Ferrari", Country: "Monaco", Flag: "🇲🇨", Number: 16}, dec("5.50")},
	{Driver{Name: "Lewis Hamilton", Team: "Ferrari", Country: "United Kingdom", Flag: "🇬🇧", Number: 44}, dec("6.00")},
	{Driver{Name: "George Russell", Team: "Mercedes", Country: "United Kingdom", Flag: "🇬🇧", Number: 63}, dec("8.00")},
	{Driver{Name: "Kimi Antonelli", Team: "Mercedes", Country: "Italy", Flag: "🇮🇹", Number: 12}, dec("15.00")},
	{Driver{Name: "Liam Lawson", Team: "Red Bull Racing", Country: "New Zealand", Flag: "🇳🇿", Number: 30}, dec("40.00")},
	{Driver{Name: "Carlos Sainz", Team: "Williams", Country: "Spain", Flag: "🇪🇸", Number: 55}, dec("25.00")},
	{Driver{Name: "Alexander Albon", Team: "Williams", Country: "Thailand", Flag: "🇹🇭", Number: 23}, dec("30.00")},
	{Driver{Name: "Fernando Alonso", Team: "Aston Martin", Country: "Spain", Flag: "🇪🇸", Number: 14}, dec("35.00")},
	{Driver{Name: "Lance Stroll", Team: "Aston Martin", Country: "Canada", Flag: "🇨🇦", Number: 18}, dec("60.00")},
	{Driver{Name: "Pierre Gasly", Team: "Alpine", Country: "France", Flag: "🇫🇷", Number: 10}, dec("50.00")},
	{Driver{Name: "Jack Doohan", Team: "Alpine", Country: "Australia", Flag: "🇦🇺", Number: 7}, dec("80.00")},
	{Driver{Name: "Yuki Tsunoda", Team: "Racing Bulls", Country: "Japan", Flag: "🇯🇵", Number: 22}, dec("55.00")},
	{Driver{Name: "Isack Hadjar", Team: "Racing Bulls", Country: "France", Flag: "🇫🇷", Number: 6}, dec("85.00")},
	{Driver{Name: "Nico Hulkenberg", Team: "Sauber", Country: "Germany", Flag: "🇩🇪", Number: 27}, dec("70.00")},
	{Driver{Name: "Gabriel Bortoleto", Team: "Sauber", Country: "Brazil", Flag: "🇧🇷", Number: 5}, dec("90.00")},
	{Driver{Name: "Esteban Ocon", Team: "Haas", Country: "France", Flag: "🇫🇷", Number: 31}, dec("65.00")},
	{Driver{Name: "Oliver Bearman", Team: "Haas", Country: "United Kingdom", Flag: "🇬🇧", Number: 87}, dec("75.00")},
}

// Races2025 são os 24 Grandes Prêmios da temporada 2025
var Races2025 = []Race{
	{Name: "Australian Grand Prix", Circuit: "Albert Park Circuit", City: "Melbourne", Country: "Australia", Flag: "🇦🇺", Date: date(2025, time.March, 16), Laps: 58, Distance: dec("306.1")},
	{Name: "Chinese Grand Prix", Circuit: "Shanghai International Circuit", City: "Shanghai", Country: "China", Flag: "🇨🇳", Date: date(2025, time.March, 23), Laps: 56, Distance: dec("305.1")},
	{Name: "Japanese Grand Prix", Circuit: "Suzuka Circuit", City: "Suzuka", Country: "Japan", Flag: "🇯🇵", Date: date(2025, time.April, 6), Laps: 53, Distance: dec("307.5")},
	{Name: "Bahrain Grand Prix", Circuit: "Bahrain International Circuit", City: "Sakhir", Country: "Bahrain", Flag: "🇧🇭", Date: date(2025, time.April, 13), Laps: 57, Distance: dec("308.2")},
	{Name: "Saudi Arabian Grand Prix", Circuit: "Jeddah Corniche Circuit", City: "Jeddah", Country: "Saudi Arabia", Flag: "🇸🇦", Date: date(2025, time.April, 20), Laps: 50, Distance: dec("308.5")},
	{Name: "Miami Grand Prix", Circuit: "Miami International Autodrome", City: "Miami", Country: "United States", Flag: "🇺🇸", Date: date(2025, time.May, 4), Laps: 57, Distance: dec("308.3")},
	{Name: "Emilia Romagna Grand Prix", Circuit: "Autodromo Enzo e Dino Ferrari", City: "Imola", Country: "Italy", Flag: "🇮🇹", Date: date(2025, time.May, 18), Laps: 63, Distance: dec("309.0")},
	{Name: "Monaco Grand Prix", Circuit: "Circuit de Monaco", City: "Monte Carlo", Country: "Monaco", Flag: "🇲🇨", Date: date(2025, time.May, 25), Laps: 78, Distance: dec("260.3")},
	{Name: "Spanish Grand Prix", Circuit: "Circuit de Barcelona-Catalunya", City: "Barcelona", Country: "Spain", Flag: "🇪🇸", Date: date(2025, time.June, 1), Laps: 66, Distance: dec("308.4")},
	{Name: "Canadian Grand Prix", Circuit: "Circuit Gilles Villeneuve", City: "Montreal", Country: "Canada", Flag: "🇨🇦", Date: date(2025, time.June, 15), Laps: 70, Distance: dec("305.3")},
	{Name: "Austrian Grand Prix", Circuit: "Red Bull Ring", City: "Spielberg", Country: "Austria", Flag: "🇦🇹", Date: date(2025, time.June, 29), Laps: 71, Distance: dec("306.5")},
	{Name: "British Grand Prix", Circuit: "Silverstone Circuit", City: "Silverstone", Country: "United Kingdom", Flag: "🇬🇧", Date: date(2025, time.July, 6), Laps: 52, Distance: dec("306.2")},
	{Name: "Belgian Grand Prix", Circuit: "Circuit de Spa-Francorchamps", City: "Spa", Country: "Belgium", Flag: "🇧🇪", Date: date(2025, time.July, 27), Laps: 44, Distance: dec("308.1")},
	{Name: "Hungarian Grand Prix", Circuit: "Hungaroring", City: "Budapest", Country: "Hungary", Flag: "🇭🇺", Date: date(2025, time.August, 3), Laps: 70, Distance: dec("306.6")},
	{Name: "Dutch Grand Prix", Circuit: "Circuit Zandvoort", City: "Zandvoort", Country: "Netherlands", Flag: "🇳🇱", Date: date(2025, time.August, 31), Laps: 72, Distance: dec("306.6")},
	{Name: "Italian Grand Prix", Circuit: "Autodromo Nazionale Monza", City: "Monza", Country: "Italy", Flag: "🇮🇹", Date: date(2025, time.September, 7), Laps: 53, Distance: dec("306.7")},
	{Name: "Azerbaijan Grand Prix", Circuit: "Baku City Circuit", City: "Baku", Country: "Azerbaijan", Flag: "🇦🇿", Date: date(2025, time.September, 21), Laps: 51, Distance: dec("306.0")},
	{Name: "Singapore Grand Prix", Circuit: "Marina Bay Street Circuit", City: "Singapore", Country: "Singapore", Flag: "🇸🇬", Date: date(2025, time.October, 5), Laps: 62, Distance: dec("306.1")},
	{Name: "United States Grand Prix", Circuit: "Circuit of the Americas", City: "Austin", Country: "United States", Flag: "🇺🇸", Date: date(2025, time.October, 19), Laps: 56, Distance: dec("308.4")},
	{Name: "Mexico City Grand Prix", Circuit: "Autodromo Hermanos Rodriguez", City: "Mexico City", Country: "Mexico", Flag: "🇲🇽", Date: date(2025, time.October, 26), Laps: 71, Distance: dec("304.4")},
	{Name: "Sao Paulo Grand Prix", Circuit: "Autodromo Jose Carlos Pace", City: "Sao Paulo", Country: "Brazil", Flag: "🇧🇷", Date: date(2025, time.November, 9), Laps: 71, Distance: dec("305.9")},
	{Name: "Las Vegas Grand Prix", Circuit: "Las Vegas Strip Circuit", City: "Las Vegas", Country: "United States", Flag: "🇺🇸", Date: date(2025, time.November, 22), Laps: 50, Distance: dec("309.9")},
	{Name: "Qatar Grand Prix", Circuit: "Lusail International Circuit", City: "Lusail", Country: "Qatar", Flag: "🇶🇦", Date: date(2025, time.November, 30), Laps: 57, Distance: dec("308.6")},
	{Name: "Abu Dhabi Grand Prix", Circuit: "Yas Marina Circuit", City: "Abu Dhabi", Country: "United Arab Emirates", Flag: "🇦🇪", Date: date(2025, time.December, 7), Laps: 58, Distance: dec("306.2")},
}

// DeriveOdds calcula as três cotações a partir da base de vitória:
// podium = max(winner*0.6, 1.50), pole = max(winner*0.8, 1.80)
func DeriveOdds(base decimal.Decimal) (winner, podium, pole decimal.Decimal) {
	winner = base
	podium = decimal.Max(base.Mul(dec("0.6")), dec("1.50")).Round(2)
	pole = decimal.Max(base.Mul(dec("0.8")), dec("1.80")).Round(2)
	return winner, podium, pole
}
