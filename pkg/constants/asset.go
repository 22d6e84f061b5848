package constants

// Asset categories. Stored verbatim in assets.category.
const (
	CategoryComputer    = "COMP"
	CategoryLaptop      = "LAPT"
	CategoryServer      = "SERV"
	CategoryUPS         = "UPS"
	CategoryProjector   = "PROJ"
	CategoryAccessPoint = "ACP"
	CategoryBiometric   = "BMD"
	CategoryPrinter     = "PRIN"
	CategoryPhotocopier = "PHOTO"
	CategoryMeza        = "MEZA"
	CategoryKabati      = "KAB"
	CategoryKiti        = "KIT"
	CategorySofa        = "SOF"
	CategoryOthers      = "OTHERS"
)

// Categories lists every category in display order.
var Categories = []string{
	CategoryComputer, CategoryLaptop, CategoryServer, CategoryUPS, CategoryProjector,
	CategoryAccessPoint, CategoryBiometric, CategoryPrinter, CategoryPhotocopier,
	CategoryMeza, CategoryKabati, CategoryKiti, CategorySofa, CategoryOthers,
}

var CategoryLabels = map[string]string{
	CategoryComputer:    "Computer",
	CategoryLaptop:      "Laptop",
	CategoryServer:      "Server",
	CategoryUPS:         "UPS",
	CategoryProjector:   "Projector",
	CategoryAccessPoint: "Access Point",
	CategoryBiometric:   "Biometric Device",
	CategoryPrinter:     "Printer",
	CategoryPhotocopier: "Photocopy Machine",
	CategoryMeza:        "Meza",
	CategoryKabati:      "Kabati",
	CategoryKiti:        "Kiti",
	CategorySofa:        "Sofa",
	CategoryOthers:      "Other Accessories",
}

func IsValidCategory(c string) bool {
	_, ok := CategoryLabels[c]
	return ok
}

const (
	AssetStatusActive            = "ACTIVE"
	AssetStatusNeedsTroubleshoot = "NEEDS_TROUBLESHOOT"
	AssetStatusInactive          = "INACTIVE"
)

func IsValidAssetStatus(s string) bool {
	switch s {
	case AssetStatusActive, AssetStatusNeedsTroubleshoot, AssetStatusInactive:
		return true
	}
	return false
}

const (
	DefaultUsefulLifeYears       = 5
	DefaultTroubleshootAfterDays = 90
	AssetNumberPrefix            = "MKS/U"
)
