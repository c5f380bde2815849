package suppliers

const (
	cairo     = "Cairo, Egypt"
	dubai     = "Dubai, UAE"
	london    = "London, UK"
	paris     = "Paris, France"
	newYork   = "New York, USA"
	tokyo     = "Tokyo, Japan"
	rome      = "Rome, Italy"
	barcelona = "Barcelona, Spain"
	sydney    = "Sydney, Australia"
)

var datasetA = Dataset{
	"cairo": {
		{Name: "Grand Nile Hotel", Location: cairo, PricePerNight: 120, AvailableRooms: 15, Rating: 4.5},
		{Name: "Pyramids View Resort", Location: cairo, PricePerNight: 95, AvailableRooms: 8, Rating: 4.2},
		{Name: "Cairo Palace Hotel", Location: cairo, PricePerNight: 85, AvailableRooms: 12, Rating: 4.0},
	},
	"dubai": {
		{Name: "Burj Al Arab", Location: dubai, PricePerNight: 450, AvailableRooms: 3, Rating: 5.0},
		{Name: "Marina Bay Hotel", Location: dubai, PricePerNight: 180, AvailableRooms: 20, Rating: 4.3},
		{Name: "Desert Oasis Resort", Location: dubai, PricePerNight: 220, AvailableRooms: 7, Rating: 4.6},
	},
	"london": {
		{Name: "The Ritz London", Location: london, PricePerNight: 380, AvailableRooms: 5, Rating: 4.8},
		{Name: "Thames View Hotel", Location: london, PricePerNight: 150, AvailableRooms: 18, Rating: 4.1},
		{Name: "Covent Garden Inn", Location: london, PricePerNight: 125, AvailableRooms: 10, Rating: 3.9},
	},
	"paris": {
		{Name: "Le Grand Hotel Paris", Location: paris, PricePerNight: 280, AvailableRooms: 6, Rating: 4.7},
		{Name: "Eiffel Tower View Hotel", Location: paris, PricePerNight: 200, AvailableRooms: 14, Rating: 4.4},
	},
}

var datasetB = Dataset{
	"cairo": {
		{Name: "Grand Nile Hotel", Location: cairo, PricePerNight: 110, AvailableRooms: 10, Rating: 4.5},
		{Name: "Nile Boutique Hotel", Location: cairo, PricePerNight: 75, AvailableRooms: 6, Rating: 3.8},
		{Name: "Cairo Downtown Hotel", Location: cairo, PricePerNight: 65, AvailableRooms: 20, Rating: 3.5},
	},
	"dubai": {
		{Name: "Atlantis The Palm", Location: dubai, PricePerNight: 320, AvailableRooms: 8, Rating: 4.7},
		{Name: "Marina Bay Hotel", Location: dubai, PricePerNight: 195, AvailableRooms: 15, Rating: 4.3},
		{Name: "JBR Beach Resort", Location: dubai, PricePerNight: 160, AvailableRooms: 12, Rating: 4.1},
	},
	"london": {
		{Name: "Savoy Hotel London", Location: london, PricePerNight: 420, AvailableRooms: 4, Rating: 4.9},
		{Name: "Thames View Hotel", Location: london, PricePerNight: 140, AvailableRooms: 22, Rating: 4.1},
		{Name: "Hyde Park Hotel", Location: london, PricePerNight: 180, AvailableRooms: 8, Rating: 4.2},
	},
	"paris": {
		{Name: "Hotel Plaza Athenee", Location: paris, PricePerNight: 350, AvailableRooms: 3, Rating: 4.8},
		{Name: "Montmartre Boutique Hotel", Location: paris, PricePerNight: 130, AvailableRooms: 16, Rating: 4.0},
		{Name: "Seine River Hotel", Location: paris, PricePerNight: 165, AvailableRooms: 11, Rating: 4.3},
	},
	"new york": {
		{Name: "The Plaza New York", Location: newYork, PricePerNight: 480, AvailableRooms: 2, Rating: 4.9},
		{Name: "Times Square Hotel", Location: newYork, PricePerNight: 220, AvailableRooms: 25, Rating: 4.2},
	},
}

var datasetC = Dataset{
	"cairo": {
		{Name: "Four Seasons Cairo", Location: cairo, PricePerNight: 250, AvailableRooms: 4, Rating: 4.8},
		{Name: "Cairo Palace Hotel", Location: cairo, PricePerNight: 80, AvailableRooms: 18, Rating: 4.0},
	},
	"dubai": {
		{Name: "Burj Al Arab", Location: dubai, PricePerNight: 420, AvailableRooms: 5, Rating: 5.0},
		{Name: "Emirates Palace Hotel", Location: dubai, PricePerNight: 380, AvailableRooms: 6, Rating: 4.9},
		{Name: "Downtown Dubai Hotel", Location: dubai, PricePerNight: 140, AvailableRooms: 30, Rating: 3.9},
	},
	"london": {
		{Name: "The Shard Hotel", Location: london, PricePerNight: 320, AvailableRooms: 7, Rating: 4.6},
		{Name: "Covent Garden Inn", Location: london, PricePerNight: 115, AvailableRooms: 14, Rating: 3.9},
		{Name: "London Bridge Hotel", Location: london, PricePerNight: 95, AvailableRooms: 25, Rating: 3.7},
	},
	"paris": {
		{Name: "Le Grand Hotel Paris", Location: paris, PricePerNight: 270, AvailableRooms: 8, Rating: 4.7},
		{Name: "Champs Elysees Hotel", Location: paris, PricePerNight: 190, AvailableRooms: 12, Rating: 4.2},
	},
	"tokyo": {
		{Name: "Park Hyatt Tokyo", Location: tokyo, PricePerNight: 400, AvailableRooms: 3, Rating: 4.9},
		{Name: "Shibuya Sky Hotel", Location: tokyo, PricePerNight: 180, AvailableRooms: 20, Rating: 4.3},
		{Name: "Tokyo Bay Resort", Location: tokyo, PricePerNight: 150, AvailableRooms: 15, Rating: 4.1},
	},
	"rome": {
		{Name: "Hotel de Russie Rome", Location: rome, PricePerNight: 290, AvailableRooms: 5, Rating: 4.7},
		{Name: "Colosseum View Hotel", Location: rome, PricePerNight: 160, AvailableRooms: 12, Rating: 4.2},
	},
}

var datasetD = Dataset{
	"cairo": {
		{Name: "Pyramids View Resort", Location: cairo, PricePerNight: 90, AvailableRooms: 12, Rating: 4.2},
		{Name: "Nile Boutique Hotel", Location: cairo, PricePerNight: 70, AvailableRooms: 8, Rating: 3.8},
	},
	"dubai": {
		{Name: "JBR Beach Resort", Location: dubai, PricePerNight: 155, AvailableRooms: 16, Rating: 4.1},
		{Name: "Dubai Marina Hotel", Location: dubai, PricePerNight: 130, AvailableRooms: 22, Rating: 3.8},
	},
	"london": {
		{Name: "The Ritz London", Location: london, PricePerNight: 370, AvailableRooms: 7, Rating: 4.8},
		{Name: "Hyde Park Hotel", Location: london, PricePerNight: 175, AvailableRooms: 10, Rating: 4.2},
		{Name: "Westminster Palace Hotel", Location: london, PricePerNight: 200, AvailableRooms: 6, Rating: 4.4},
	},
	"paris": {
		{Name: "Eiffel Tower View Hotel", Location: paris, PricePerNight: 195, AvailableRooms: 16, Rating: 4.4},
		{Name: "Louvre Palace Hotel", Location: paris, PricePerNight: 240, AvailableRooms: 9, Rating: 4.5},
	},
	"new york": {
		{Name: "Times Square Hotel", Location: newYork, PricePerNight: 210, AvailableRooms: 30, Rating: 4.2},
		{Name: "Central Park Hotel", Location: newYork, PricePerNight: 280, AvailableRooms: 12, Rating: 4.6},
	},
	"barcelona": {
		{Name: "Hotel Arts Barcelona", Location: barcelona, PricePerNight: 220, AvailableRooms: 8, Rating: 4.5},
		{Name: "Gothic Quarter Hotel", Location: barcelona, PricePerNight: 120, AvailableRooms: 18, Rating: 4.0},
		{Name: "Sagrada Familia Hotel", Location: barcelona, PricePerNight: 95, AvailableRooms: 24, Rating: 3.7},
	},
	"sydney": {
		{Name: "Sydney Harbour Hotel", Location: sydney, PricePerNight: 190, AvailableRooms: 14, Rating: 4.3},
		{Name: "Opera House View Hotel", Location: sydney, PricePerNight: 250, AvailableRooms: 6, Rating: 4.6},
	},
}
