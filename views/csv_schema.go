package views

// Column layouts for every CSV the module writes. The models' CSVHeader
// methods must agree with these lists.

// Schema identifies a CSV layout.
type Schema int

const (
	// SchemaStored is a collector table row (m/s² for accelerometer rows).
	SchemaStored Schema = iota
	// SchemaRecorded is a sample from the logger's recording buffer.
	SchemaRecorded
)

var schemaNames = map[Schema]string{
	SchemaStored:   "stored",
	SchemaRecorded: "recorded",
}

func (s Schema) String() string {
	if n, ok := schemaNames[s]; ok {
		return n
	}
	return "unknown"
}

// SchemaColumns returns the canonical column list for a layout.
var SchemaColumns = map[Schema][]string{
	SchemaStored: {
		"id", "unique_timestamp", "timestamp",
		"x", "y", "z", "magnitude",
	},
	SchemaRecorded: {
		"timestamp", "x", "y", "z", "magnitude",
	},
}
