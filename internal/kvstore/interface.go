package kvstore

// Namespace is the prefix of every key the application owns. Backup export
// copies exactly the keys under this prefix.
const Namespace = "pelada_"

// Store is the string key-value persistence collaborator. Values are opaque
// serialized blobs; the store never inspects them.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Keys(prefix string) ([]string, error)
}
