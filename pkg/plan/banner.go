package plan

import "fmt"

// Banner returns the license header prepended to every build artifact of the
// named package. The result is byte-identical across invocations for the
// same display name; build outputs are compared for reproducibility, so the
// banner must not embed timestamps or environment details.
func Banner(displayName string) string {
	return fmt.Sprintf(`/**
 * %s
 *
 * Copyright (c) Luma contributors
 * Released under the MIT License
 * https://github.com/lumajs/luma
 */`, displayName)
}
