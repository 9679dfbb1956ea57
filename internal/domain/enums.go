package domain

type Category string

const (
	CategoryManual   Category = "manual_process"
	CategoryClothing Category = "clothing"
)

// ValidCategories is the set of labels the classifier may emit.
var ValidCategories = map[Category]bool{
	CategoryManual:   true,
	CategoryClothing: true,
}

type ServiceType string

const (
	ServiceFaucetRepair ServiceType = "faucet_repair"
	ServiceTshirtSale   ServiceType = "tshirt_sale"
	ServicePantsSale    ServiceType = "pants_sale"
)

// Category returns the task category a service type belongs to.
func (s ServiceType) Category() Category {
	switch s {
	case ServiceTshirtSale, ServicePantsSale:
		return CategoryClothing
	default:
		return CategoryManual
	}
}

// Collection returns the supplier directory partition that serves s.
func (s ServiceType) Collection() (Collection, bool) {
	c, ok := serviceCollections[s]
	return c, ok
}

func (s ServiceType) Valid() bool {
	_, ok := serviceCollections[s]
	return ok
}

type Collection string

const (
	CollectionFaucet Collection = "suppliers_faucet"
	CollectionTshirt Collection = "suppliers_tshirt"
	CollectionPants  Collection = "suppliers_pants"
)

// SupplierCollections lists the directory partitions in seed order.
var SupplierCollections = []Collection{CollectionFaucet, CollectionTshirt, CollectionPants}

var serviceCollections = map[ServiceType]Collection{
	ServiceFaucetRepair: CollectionFaucet,
	ServiceTshirtSale:   CollectionTshirt,
	ServicePantsSale:    CollectionPants,
}

type TimeWindow string

const (
	WindowNone      TimeWindow = ""
	WindowMorning   TimeWindow = "morning"
	WindowAfternoon TimeWindow = "afternoon"
	WindowEvening   TimeWindow = "evening"
)

type Phase string

const (
	PhaseForm         Phase = "form"
	PhaseSupplierChat Phase = "supplier_chat"
	PhaseBudget       Phase = "budget"
)

// DefaultMaxOffers is how many accepted offers close a negotiation round.
const DefaultMaxOffers = 3
