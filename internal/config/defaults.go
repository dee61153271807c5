package config

const defaultPort = 8080

// Preparation time bounds accepted by the scheduler.
const (
	MinPrepMinutes     = 30
	MaxPrepMinutes     = 180
	defaultPrepMinutes = 60
)

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "storefront_db",
}

var defaultWolt = Wolt{
	Development: true,
}

var defaultKafka = Kafka{
	Topic:   "checkout.orders",
	GroupID: "storefront-drive-worker",
}

var defaultRedis = Redis{
	Addr: "",
	DB:   0,
}

var defaultVenue = Venue{
	OpenTime:    "08:00",
	CloseTime:   "22:00",
	Timezone:    "Europe/Athens",
	PrepMinutes: defaultPrepMinutes,
}

// DefaultPort returns the default HTTP port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultWolt returns the default Wolt Drive API settings.
func DefaultWolt() Wolt {
	return defaultWolt
}

// DefaultKafka returns the default order-events consumer settings.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultRedis returns the default negotiation-log store settings.
func DefaultRedis() Redis {
	return defaultRedis
}

// DefaultVenue returns the default venue hours and scheduling settings.
func DefaultVenue() Venue {
	return defaultVenue
}
