// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratastor/ifmigrate/pkg/errors"
)

func TestValidateVLANID(t *testing.T) {
	for _, id := range []int{1, 100, 4094} {
		assert.NoError(t, validateVLANID(id), "id %d", id)
	}

	for _, id := range []int{0, 4095} {
		err := validateVLANID(id)
		require.Error(t, err, "id %d", id)
		assert.True(t, errors.HasCode(err, errors.NetworkVLANIDInvalid))
	}
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validateIPAddressFormat("10.0.0.1"))
	assert.NoError(t, validateIPAddressFormat("fec0::2/64"))
	assert.Error(t, validateIPAddressFormat("10.0.0.300"))

	assert.NoError(t, validateMACAddressFormat("00:11:22:33:44:55"))
	assert.NoError(t, validateMACAddressFormat("0011.2233.4455"))
	assert.Error(t, validateMACAddressFormat("00:11:22"))

	assert.NoError(t, validateMTU("9000"))
	assert.Error(t, validateMTU("jumbo"))
	assert.Error(t, validateMTU("20"))

	assert.NoError(t, validateRouteMetric("100"))
	assert.Error(t, validateRouteMetric("-1"))
}
