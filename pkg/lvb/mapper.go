package lvb

// MapperFunc decodes one entry slice into a typed payload. Implementations
// must only read from the slice they are given.
type MapperFunc func(entry []byte) (Payload, error)

// Resolver supplies payload decoders for section magics the decoder does
// not know. Consumers register resolvers with WithResolver to decode
// format extensions (for example the XC3 enemy placement table) without
// touching the core.
type Resolver func(magic Magic, modern bool) (MapperFunc, bool)

// Option configures a decode.
type Option func(*decodeConfig)

type decodeConfig struct {
	resolvers []Resolver
}

// WithResolver appends an extension resolver. Resolvers are consulted in
// registration order, after the built-in table and before the Raw
// fallback.
func WithResolver(r Resolver) Option {
	return func(cfg *decodeConfig) {
		cfg.resolvers = append(cfg.resolvers, r)
	}
}

// resolveMapper picks the payload decoder for a section: built-ins first,
// then the extension resolvers, then Raw. No magic can halt decoding.
func resolveMapper(magic Magic, modern bool, ext []Resolver) MapperFunc {
	switch magic {
	case MagicInfo:
		if modern {
			return decodeInfo
		}
		return decodeLegacyInfo
	case MagicXfrm:
		return decodeTransform
	case MagicDebug:
		return decodeDebug
	case MagicStrings:
		return decodeStrings
	}
	for _, r := range ext {
		if fn, ok := r(magic, modern); ok && fn != nil {
			return fn
		}
	}
	return decodeRaw
}
