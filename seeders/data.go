package seeders

type officeSeed struct {
	Name      string
	Location  string
	Divisions []divisionSeed
}

type divisionSeed struct {
	Name           string
	HeadOfDivision string
}

var officesData = []officeSeed{
	{
		Name:     "Head Office",
		Location: "Jakarta",
		Divisions: []divisionSeed{
			{Name: "Human Resources", HeadOfDivision: "Head of HR"},
			{Name: "Information Technology", HeadOfDivision: "Head of IT"},
			{Name: "Finance", HeadOfDivision: "Head of Finance"},
		},
	},
	{
		Name:     "Branch Office",
		Location: "Surabaya",
		Divisions: []divisionSeed{
			{Name: "General Affairs", HeadOfDivision: "Head of GA"},
		},
	},
}
