package naming

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Naming functions for testbed resources. Every resource created for an
// experiment carries the experiment name as a prefix so that listings and
// cleanup can identify what belongs to whom.

func Lease(item string) string {
	return fmt.Sprintf("%s-lease", item)
}

func Network(item string) string {
	return fmt.Sprintf("%s-net", item)
}

func Keypair(experiment string) string {
	return fmt.Sprintf("%s-key", experiment)
}

func Container(experiment, name string) string {
	return fmt.Sprintf("%s-%s", experiment, name)
}

// Random returns a short unique suffix for resources created without an
// explicit name.
func Random() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
