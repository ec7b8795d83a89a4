package constant

const MaxBufferSize = 515

const Socks5Version05 = 0x05

const (
	MethodNoAuthRequired   = 0x00
	MethodGSSAPI           = 0x01
	MethodUsernamePassword = 0x02
	MethodNotAcceptable    = 0xFF
)

type Socks5Cmd = byte

const (
	Connect Socks5Cmd = iota + 1
	Bind
	UDPAssociate
)

type ReplyCode byte

const (
	Succeeded ReplyCode = iota
	GeneralFailure
	ConnectionNotAllowed
	NetworkUnreachable
	HostUnreachable
	ConnectionRefused
	TTLExpired
	CommandNotSupported
	AddressTypeNotSupported
)

func (c ReplyCode) String() string {
	switch c {
	case Succeeded:
		return "succeeded"
	case GeneralFailure:
		return "general SOCKS server failure"
	case ConnectionNotAllowed:
		return "connection not allowed by ruleset"
	case NetworkUnreachable:
		return "network unreachable"
	case HostUnreachable:
		return "host unreachable"
	case ConnectionRefused:
		return "connection refused"
	case TTLExpired:
		return "TTL expired"
	case CommandNotSupported:
		return "command not supported"
	case AddressTypeNotSupported:
		return "address type not supported"
	default:
		return "unassigned reply code"
	}
}
