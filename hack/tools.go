//go:build tools

package hack

// Add tools that code generation depends on here, to ensure they are tracked in go.mod.
import (
	_ "go.uber.org/mock/mockgen"
)
