package redis

import "fmt"

const defaultNamespace = "playerstore"

// playersKey returns the key holding the JSON snapshot of the registry
func playersKey(namespace string) string {
	if namespace == "" {
		namespace = defaultNamespace
	}
	return fmt.Sprintf("%s:players", namespace)
}
