package wxferr

// Op names the stage of a conversion in which an error occurred.
type Op int8

const (
	Unknown Op = iota
	Construct
	Encode
	EncodeText
	Compress
	Marshal
	Parse
	Read
	Write
)

func (o Op) String() string {
	ops := map[Op]string{
		Unknown:    "unknown",
		Construct:  "construct",
		Encode:     "encode",
		EncodeText: "encode text",
		Compress:   "compress",
		Marshal:    "marshal",
		Parse:      "parse",
		Read:       "read",
		Write:      "write",
	}

	if str, ok := ops[o]; ok {
		return str
	}
	return "unknown"
}
