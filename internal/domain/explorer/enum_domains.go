package explorer

import "database/sql/driver"

// Category is the classification of a flagged address or asset.
type Category uint8

const (
	CategoryNone Category = iota
	CategoryWalletService
	CategoryMerchantService
	CategoryMiningPool
	CategoryExchange
	CategoryDeFi
	CategoryOTCDesk
	CategoryBridge
	CategoryMixer
	CategoryScam
	CategoryRansomware
	CategoryTheft
	CategoryCounterfeit
	CategoryTerroristFinancing
	CategorySanctions
	CategoryChildAbuse
	CategoryHacker
	CategoryHighRiskJurisdiction

	categoryCount
)

var categoryExternal = [...]string{
	"None",
	"WalletService",
	"MerchantService",
	"MiningPool",
	"Exchange",
	"DeFi",
	"OTCDesk",
	"Bridge",
	"Mixer",
	"Scam",
	"Ransomware",
	"Theft",
	"Counterfeit",
	"TerroristFinancing",
	"Sanctions",
	"ChildAbuse",
	"Hacker",
	"HighRiskJurisdiction",
}

var categoryStorage = [...]string{
	"none",
	"wallet_service",
	"merchant_service",
	"mining_pool",
	"exchange",
	"defi",
	"otc_desk",
	"bridge",
	"mixer",
	"scam",
	"ransomware",
	"theft",
	"counterfeit",
	"terrorist_financing",
	"sanctions",
	"child_abuse",
	"hacker",
	"high_risk_jurisdiction",
}

var CategoryDomain = newEnumDomain("category", categoryExternal[:], categoryStorage[:])

func ParseCategory(raw string) (Category, error) { return parseEnum[Category](CategoryDomain, raw) }

func CategoryFromStorage(raw string) (Category, error) {
	return enumFromStorage[Category](CategoryDomain, raw)
}

func CategoryValues() []Category { return enumValues[Category](CategoryDomain) }

func (c Category) String() string { return CategoryDomain.externalName(int(c)) }

func (c Category) StorageValue() string {
	v, _ := CategoryDomain.storageValue(int(c))
	return v
}

func (c Category) Valid() bool { return c < categoryCount }

func (c Category) MarshalJSON() ([]byte, error) { return marshalEnum(CategoryDomain, int(c)) }

func (c *Category) UnmarshalJSON(data []byte) error { return unmarshalEnum(CategoryDomain, c, data) }

func (c Category) Value() (driver.Value, error) { return enumValue(CategoryDomain, int(c)) }

func (c *Category) Scan(src any) error { return scanEnum(CategoryDomain, c, src) }

type ReporterRole uint8

const (
	RoleValidator ReporterRole = iota
	RoleTracer
	RolePublisher
	RoleAuthority

	reporterRoleCount
)

var reporterRoleExternal = [...]string{
	"Validator",
	"Tracer",
	"Publisher",
	"Authority",
}

var reporterRoleStorage = [...]string{
	"validator",
	"tracer",
	"publisher",
	"authority",
}

var ReporterRoleDomain = newEnumDomain("reporter_role", reporterRoleExternal[:], reporterRoleStorage[:])

func ParseReporterRole(raw string) (ReporterRole, error) {
	return parseEnum[ReporterRole](ReporterRoleDomain, raw)
}

func ReporterRoleFromStorage(raw string) (ReporterRole, error) {
	return enumFromStorage[ReporterRole](ReporterRoleDomain, raw)
}

func ReporterRoleValues() []ReporterRole { return enumValues[ReporterRole](ReporterRoleDomain) }

func (r ReporterRole) String() string { return ReporterRoleDomain.externalName(int(r)) }

func (r ReporterRole) StorageValue() string {
	v, _ := ReporterRoleDomain.storageValue(int(r))
	return v
}

func (r ReporterRole) Valid() bool { return r < reporterRoleCount }

func (r ReporterRole) MarshalJSON() ([]byte, error) { return marshalEnum(ReporterRoleDomain, int(r)) }

func (r *ReporterRole) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(ReporterRoleDomain, r, data)
}

func (r ReporterRole) Value() (driver.Value, error) { return enumValue(ReporterRoleDomain, int(r)) }

func (r *ReporterRole) Scan(src any) error { return scanEnum(ReporterRoleDomain, r, src) }

type ReporterStatus uint8

const (
	ReporterStatusInactive ReporterStatus = iota
	ReporterStatusActive
	ReporterStatusUnstaking

	reporterStatusCount
)

var reporterStatusExternal = [...]string{
	"Inactive",
	"Active",
	"Unstaking",
}

var reporterStatusStorage = [...]string{
	"inactive",
	"active",
	"unstaking",
}

var ReporterStatusDomain = newEnumDomain("reporter_status", reporterStatusExternal[:], reporterStatusStorage[:])

func ParseReporterStatus(raw string) (ReporterStatus, error) {
	return parseEnum[ReporterStatus](ReporterStatusDomain, raw)
}

func ReporterStatusFromStorage(raw string) (ReporterStatus, error) {
	return enumFromStorage[ReporterStatus](ReporterStatusDomain, raw)
}

func ReporterStatusValues() []ReporterStatus { return enumValues[ReporterStatus](ReporterStatusDomain) }

func (r ReporterStatus) String() string { return ReporterStatusDomain.externalName(int(r)) }

func (r ReporterStatus) StorageValue() string {
	v, _ := ReporterStatusDomain.storageValue(int(r))
	return v
}

func (r ReporterStatus) Valid() bool { return r < reporterStatusCount }

func (r ReporterStatus) MarshalJSON() ([]byte, error) {
	return marshalEnum(ReporterStatusDomain, int(r))
}

func (r *ReporterStatus) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(ReporterStatusDomain, r, data)
}

func (r ReporterStatus) Value() (driver.Value, error) { return enumValue(ReporterStatusDomain, int(r)) }

func (r *ReporterStatus) Scan(src any) error { return scanEnum(ReporterStatusDomain, r, src) }

type CaseStatus uint8

const (
	CaseStatusClosed CaseStatus = iota
	CaseStatusOpen

	caseStatusCount
)

var caseStatusExternal = [...]string{
	"Closed",
	"Open",
}

var caseStatusStorage = [...]string{
	"closed",
	"open",
}

var CaseStatusDomain = newEnumDomain("case_status", caseStatusExternal[:], caseStatusStorage[:])

func ParseCaseStatus(raw string) (CaseStatus, error) {
	return parseEnum[CaseStatus](CaseStatusDomain, raw)
}

func CaseStatusFromStorage(raw string) (CaseStatus, error) {
	return enumFromStorage[CaseStatus](CaseStatusDomain, raw)
}

func CaseStatusValues() []CaseStatus { return enumValues[CaseStatus](CaseStatusDomain) }

func (c CaseStatus) String() string { return CaseStatusDomain.externalName(int(c)) }

func (c CaseStatus) StorageValue() string {
	v, _ := CaseStatusDomain.storageValue(int(c))
	return v
}

func (c CaseStatus) Valid() bool { return c < caseStatusCount }

func (c CaseStatus) MarshalJSON() ([]byte, error) { return marshalEnum(CaseStatusDomain, int(c)) }

func (c *CaseStatus) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(CaseStatusDomain, c, data)
}

func (c CaseStatus) Value() (driver.Value, error) { return enumValue(CaseStatusDomain, int(c)) }

func (c *CaseStatus) Scan(src any) error { return scanEnum(CaseStatusDomain, c, src) }

// NetworkBackend is the chain family a network runs on.
type NetworkBackend uint8

const (
	BackendEvm NetworkBackend = iota
	BackendSolana
	BackendNear

	networkBackendCount
)

var networkBackendExternal = [...]string{
	"Evm",
	"Solana",
	"Near",
}

var networkBackendStorage = [...]string{
	"evm",
	"solana",
	"near",
}

var NetworkBackendDomain = newEnumDomain("network_backend", networkBackendExternal[:], networkBackendStorage[:])

func ParseNetworkBackend(raw string) (NetworkBackend, error) {
	return parseEnum[NetworkBackend](NetworkBackendDomain, raw)
}

func NetworkBackendFromStorage(raw string) (NetworkBackend, error) {
	return enumFromStorage[NetworkBackend](NetworkBackendDomain, raw)
}

func NetworkBackendValues() []NetworkBackend { return enumValues[NetworkBackend](NetworkBackendDomain) }

func (n NetworkBackend) String() string { return NetworkBackendDomain.externalName(int(n)) }

func (n NetworkBackend) StorageValue() string {
	v, _ := NetworkBackendDomain.storageValue(int(n))
	return v
}

func (n NetworkBackend) Valid() bool { return n < networkBackendCount }

func (n NetworkBackend) MarshalJSON() ([]byte, error) {
	return marshalEnum(NetworkBackendDomain, int(n))
}

func (n *NetworkBackend) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(NetworkBackendDomain, n, data)
}

func (n NetworkBackend) Value() (driver.Value, error) { return enumValue(NetworkBackendDomain, int(n)) }

func (n *NetworkBackend) Scan(src any) error { return scanEnum(NetworkBackendDomain, n, src) }

// Each value table must have exactly one entry per constant; a mismatch fails to compile.
func _() {
	var x [1]struct{}
	_ = x[len(categoryExternal)-int(categoryCount)]
	_ = x[len(categoryStorage)-int(categoryCount)]
	_ = x[len(reporterRoleExternal)-int(reporterRoleCount)]
	_ = x[len(reporterRoleStorage)-int(reporterRoleCount)]
	_ = x[len(reporterStatusExternal)-int(reporterStatusCount)]
	_ = x[len(reporterStatusStorage)-int(reporterStatusCount)]
	_ = x[len(caseStatusExternal)-int(caseStatusCount)]
	_ = x[len(caseStatusStorage)-int(caseStatusCount)]
	_ = x[len(networkBackendExternal)-int(networkBackendCount)]
	_ = x[len(networkBackendStorage)-int(networkBackendCount)]
}
