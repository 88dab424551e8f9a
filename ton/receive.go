package ton

import (
	"context"

	"github.com/sergeybanach/wallet-app-1/internal/address"
	"github.com/sergeybanach/wallet-app-1/internal/common"
	"github.com/sergeybanach/wallet-app-1/internal/model"
)

// TransferLinkPrefix starts a ton:// payment link.
const TransferLinkPrefix = "ton://transfer/"

// Receive returns every encoding of the wallet address for network, a
// payment link and its QR code. Wallets receive on the non-bounceable form.
func (s *Service) Receive(ctx context.Context, userID string, network model.Network) (*model.ReceiveResponse, error) {
	raw, err := s.store.Address(ctx, userID)
	if err != nil {
		return nil, err
	}
	addr, _, err := address.Decode(raw)
	if err != nil {
		return nil, err
	}

	forms := address.Forms(addr, network)
	link := TransferLinkPrefix + forms.NonBounceable
	qr, err := common.QRCode(link)
	if err != nil {
		return nil, err
	}

	return &model.ReceiveResponse{
		Address:           forms.NonBounceable,
		Raw:               forms.Raw,
		Bounceable:        forms.Bounceable,
		NonBounceable:     forms.NonBounceable,
		TestBounceable:    forms.TestBounceable,
		TestNonBounceable: forms.TestNonBounceable,
		TransferLink:      link,
		QR:                qr,
	}, nil
}
