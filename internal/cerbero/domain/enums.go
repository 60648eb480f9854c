package domain

// CredentialState is the lifecycle state of an RFID credential.
type CredentialState string

const (
	CredentialActive  CredentialState = "ACTIVE"
	CredentialBlocked CredentialState = "BLOCKED"
	CredentialExpired CredentialState = "EXPIRED"
	CredentialLost    CredentialState = "LOST"
)

// PINState is the lifecycle state of an area PIN.  BLOCKED is terminal
// pending an external administrative reset.
type PINState string

const (
	PINActive  PINState = "ACTIVE"
	PINBlocked PINState = "BLOCKED"
)

// PermissionState is the lifecycle state of an access permission.
type PermissionState string

const (
	PermissionActive    PermissionState = "ACTIVE"
	PermissionSuspended PermissionState = "SUSPENDED"
	PermissionExpired   PermissionState = "EXPIRED"
)

// AuthResult is the outcome recorded on an audit record.
type AuthResult string

const (
	ResultSuccess AuthResult = "SUCCESS"
	ResultFailure AuthResult = "FAILURE"
)

// Factor identifies one independently verifiable authentication factor.
type Factor string

const (
	FactorRFID    Factor = "RFID"
	FactorPIN     Factor = "PIN"
	FactorPattern Factor = "PATTERN"
)

// AreaKind categorizes an access-controlled area.
type AreaKind string

const (
	AreaLaboratory AreaKind = "LABORATORY"
	AreaStoreroom  AreaKind = "STOREROOM"
	AreaSensitive  AreaKind = "SENSITIVE"
)
