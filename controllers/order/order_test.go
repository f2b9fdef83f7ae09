package orderControllers

import (
	"testing"

	"github.com/alka-bakery/bakery-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapOrderStatus(t *testing.T) {
	status, err := mapOrderStatus("Shipped")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, status)

	_, err = mapOrderStatus("teleported")
	assert.Error(t, err)
}

func TestMapPaymentStatus(t *testing.T) {
	status, err := mapPaymentStatus("PAID")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, status)

	_, err = mapPaymentStatus("failed")
	assert.Error(t, err)
}
