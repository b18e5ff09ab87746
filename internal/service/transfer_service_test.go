package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"checkout-gateway/internal/core/domain"
	"checkout-gateway/internal/core/ports/mocks"
	"checkout-gateway/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testMerchant = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"
	testPayer    = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
)

func testCheckpoint() *domain.Checkpoint {
	now := time.Now().UTC()
	return &domain.Checkpoint{
		BlockID:         "EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N",
		LastValidHeight: 1000,
		ObtainedAt:      now,
		ExpiresAt:       now.Add(time.Minute),
	}
}

func testDescriptor(payer string, qty uint64, cp domain.Checkpoint) *domain.TransferDescriptor {
	return &domain.TransferDescriptor{
		Payer:          payer,
		Payee:          testMerchant,
		AssetQuantity:  qty,
		Checkpoint:     cp,
		FeePayer:       payer,
		SignatureSlots: 1,
		Serialized:     []byte{0x01, 0x02, 0x03},
	}
}

func TestTransferBuilder_Build_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockLedgerClient(ctrl)
	b := NewTransferBuilder(ledger, testMerchant, newTestLogger())
	cp := testCheckpoint()

	gomock.InOrder(
		ledger.EXPECT().ValidateAddress(testMerchant).Return(nil),
		ledger.EXPECT().ValidateAddress(testPayer).Return(nil),
		ledger.EXPECT().LatestCheckpoint(gomock.Any()).Return(cp, nil),
		ledger.EXPECT().EncodeTransfer(testPayer, testMerchant, uint64(1243781095), *cp).
			Return(testDescriptor(testPayer, 1243781095, *cp), nil),
	)

	d, err := b.Build(context.Background(), testPayer, 1243781095)
	require.NoError(t, err)
	assert.Equal(t, testPayer, d.FeePayer)
	assert.Equal(t, uint64(1243781095), d.AssetQuantity)
	assert.Equal(t, cp.BlockID, d.Checkpoint.BlockID)
}

func TestTransferBuilder_Build_InvalidPayerBeforeCheckpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockLedgerClient(ctrl)
	b := NewTransferBuilder(ledger, testMerchant, newTestLogger())

	ledger.EXPECT().ValidateAddress(testMerchant).Return(nil)
	ledger.EXPECT().ValidateAddress("not-a-key").Return(errors.New("invalid base58"))
	// LatestCheckpoint must not be called.

	_, err := b.Build(context.Background(), "not-a-key", 100)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidAddress))
}

func TestTransferBuilder_Build_InvalidMerchantFailsClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockLedgerClient(ctrl)
	b := NewTransferBuilder(ledger, "", newTestLogger())

	ledger.EXPECT().ValidateAddress("").Return(errors.New("empty address"))

	_, err := b.Build(context.Background(), testPayer, 100)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidAddress))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Message, "merchant")
}

func TestTransferBuilder_Build_ZeroQuantity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockLedgerClient(ctrl)
	b := NewTransferBuilder(ledger, testMerchant, newTestLogger())

	ledger.EXPECT().ValidateAddress(gomock.Any()).Return(nil).Times(2)

	_, err := b.Build(context.Background(), testPayer, 0)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidAmount))
}

func TestTransferBuilder_Build_LedgerUnreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockLedgerClient(ctrl)
	b := NewTransferBuilder(ledger, testMerchant, newTestLogger())

	ledger.EXPECT().ValidateAddress(gomock.Any()).Return(nil).Times(2)
	ledger.EXPECT().LatestCheckpoint(gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := b.Build(context.Background(), testPayer, 100)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeLedgerUnreachable))
}

func TestTransferBuilder_Build_KeepsAdapterAppError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockLedgerClient(ctrl)
	b := NewTransferBuilder(ledger, testMerchant, newTestLogger())

	ledger.EXPECT().ValidateAddress(gomock.Any()).Return(nil).Times(2)
	ledger.EXPECT().LatestCheckpoint(gomock.Any()).
		Return(nil, apperror.ErrLedgerUnreachable(errors.New("rpc 503")))

	_, err := b.Build(context.Background(), testPayer, 100)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeLedgerUnreachable, appErr.Code)
	assert.EqualError(t, errors.Unwrap(appErr), "rpc 503")
}
