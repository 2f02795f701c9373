package logging

const (
	NameKeyCache     = "KeyCache"
	NameKeyValidator = "KeyValidator"
	NameRegistry     = "RegistryClient"
	NameReporter     = "Reporter"

	NameBadgerDBLog = "BadgerDBLog"
)
