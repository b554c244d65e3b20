package m_service_type

// Field constants for the service_types table. This core only ever reads it.
const (
	TableName = "service_types"

	ColServiceTypeID = "service_type_id"
	ColCode          = "code"
	ColName          = "name"
	ColStatus        = "status"
	ColCreatedAt     = "created_at"
)

// StatusActive is the only lifecycle state a product item may reference.
const StatusActive = "active"
