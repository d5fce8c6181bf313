// Package structcodec generates struct (de)serialization at runtime instead
// of at compile time: one reflect walker drives the serde.Serializer/
// serde.Deserializer protocol for any Go struct, honoring a
// `serde:"name,omitempty,default,skip_serializing"` tag plus a per-format
// override tag such as `serde_json:"name"`.
//
// A struct opts in by delegating from its own SerializeWith/DeserializeWith:
//
//	func (p Person) SerializeWith(s serde.Serializer) error {
//		return structcodec.Serialize(p, s)
//	}
//
//	func (p *Person) DeserializeWith(d serde.Deserializer) (any, error) {
//		return structcodec.Deserialize(d, p)
//	}
package structcodec
