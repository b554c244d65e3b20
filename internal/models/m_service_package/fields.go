package m_service_package

// Field constants for the service_packages table. This core only ever reads it.
const (
	TableName = "service_packages"

	ColServicePackageID = "service_package_id"
	ColCode             = "code"
	ColName             = "name"
	ColStatus           = "status"
	ColCreatedAt        = "created_at"
)
