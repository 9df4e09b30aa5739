// Copyright (c) 2024-2026 The random123 authors.
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package threefry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelfTestPasses(t *testing.T) {
	t.Parallel()
	assert.NoError(t, SelfTest())
}
