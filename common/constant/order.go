package constant

// Serial counter names and their code prefixes. One counter row per
// name, created lazily on first allocation.
const (
	SerialCounterOrder       = "Order"
	SerialCounterTransaction = "Transaction"

	SerialPrefixOrder       = "O"
	SerialPrefixTransaction = "T"
)

// MaxQuantityPerBooth caps the quantity of a single order line. Booths
// are uniquely identified units, so a line claims one booth.
const MaxQuantityPerBooth = 1
