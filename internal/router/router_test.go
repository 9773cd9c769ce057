package router

import (
	"errors"
	"fmt"
	bidding "peer-bidding/internal/biddingService"
	"peer-bidding/internal/biddingerrors"
	"peer-bidding/internal/eventbus"
	model "peer-bidding/internal/models"
	"peer-bidding/internal/protocol"
	"peer-bidding/internal/repository"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

const (
	sellerID = "aaaaaa111111"
	buyerID  = "bbbbbb222222"
	rivalID  = "cccccc333333"
)

type fixture struct {
	router    *CommandRouter
	transport *MockTransport
	repo      *repository.MemoryRepo
	history   *eventbus.History
}

// newSellerFixture builds a router for the seller with item1 listed at 10
func newSellerFixture(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	repo := repository.NewMemoryRepo()
	svc := bidding.NewBiddingService(repo)
	_, err := svc.CreateBid(sellerID, "item1", "10")
	require.NoError(t, err)

	bus := eventbus.New()
	history := eventbus.NewHistory(bus, 50)
	transport := NewMockTransport(ctrl)

	return fixture{
		router:    New(sellerID, svc, transport, bus),
		transport: transport,
		repo:      repo,
		history:   history,
	}
}

func frame(t *testing.T, cmd protocol.Command, data any) []byte {
	t.Helper()
	raw, err := protocol.Encode(cmd, data)
	require.NoError(t, err)
	return raw
}

func offer(itemID, price string) protocol.PlacePricePayload {
	return protocol.PlacePricePayload{SellerID: sellerID, ItemID: itemID, Price: protocol.PriceInput(price)}
}

func TestHandleMessage_AcceptedOfferIsBroadcast(t *testing.T) {
	t.Parallel()
	f := newSellerFixture(t)

	summary := "User " + buyerID + " has placed price 15 on item: item1!"
	f.transport.EXPECT().Broadcast(protocol.CmdSendMessageLocally, summary).Return(nil)

	err := f.router.HandleMessage(buyerID, frame(t, protocol.CmdPeerPlacePrice, offer("item1", "15")))
	require.NoError(t, err)

	record, err := f.repo.Get("item1")
	require.NoError(t, err)
	require.Equal(t, buyerID, record.PotentialOwner)
	require.Equal(t, "15", record.Price.String())

	last, ok := f.history.Last(eventbus.MessageAdded)
	require.True(t, ok)
	require.Equal(t, FromAll, last.From)
	require.Equal(t, summary, last.Message)
}

func TestHandleMessage_RejectedOfferGoesOnlyToOfferingPeer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		from      string
		payload   protocol.PlacePricePayload
		expectErr error
	}{
		{name: "price_too_low", from: rivalID, payload: offer("item1", "9"), expectErr: biddingerrors.ErrPriceTooLow},
		{name: "price_tie", from: rivalID, payload: offer("item1", "10"), expectErr: biddingerrors.ErrPriceTooLow},
		{name: "invalid_price", from: rivalID, payload: offer("item1", "ten"), expectErr: biddingerrors.ErrInvalidPrice},
		{name: "unknown_item", from: rivalID, payload: offer("item9", "50"), expectErr: biddingerrors.ErrItemNotFound},
		{name: "price_overflows_float", from: rivalID, payload: offer("item1", "1e400"), expectErr: biddingerrors.ErrInvalidPrice},
		{name: "price_underflows_to_zero", from: rivalID, payload: offer("item1", "1e-400"), expectErr: biddingerrors.ErrInvalidPrice},
		{name: "price_huge_exponent", from: rivalID, payload: offer("item1", "1e50000000"), expectErr: biddingerrors.ErrInvalidPrice},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newSellerFixture(t)
			before, err := f.repo.Get("item1")
			require.NoError(t, err)

			f.transport.EXPECT().Unicast(tc.from, protocol.CmdError, tc.expectErr.Error()).Return(nil)
			f.transport.EXPECT().Broadcast(gomock.Any(), gomock.Any()).Times(0)

			require.NoError(t, f.router.HandleMessage(tc.from, frame(t, protocol.CmdPeerPlacePrice, tc.payload)))

			after, err := f.repo.Get("item1")
			require.NoError(t, err)
			require.Equal(t, before, after)
			require.Empty(t, f.history.Messages(), "silent observers and the seller UI never see a rejected offer")
		})
	}
}

func TestHandleMessage_OfferOnClosedBid(t *testing.T) {
	t.Parallel()
	f := newSellerFixture(t)

	f.transport.EXPECT().Broadcast(protocol.CmdSendMessageLocally, gomock.Any()).Return(nil)
	_, err := f.router.CloseBid("item1")
	require.NoError(t, err)

	f.transport.EXPECT().Unicast(buyerID, protocol.CmdError, biddingerrors.ErrBidClosed.Error()).Return(nil)
	require.NoError(t, f.router.HandleMessage(buyerID, frame(t, protocol.CmdPeerPlacePrice, offer("item1", "100"))))

	record, err := f.repo.Get("item1")
	require.NoError(t, err)
	require.Equal(t, model.StatusClosed, record.Status)
	require.False(t, record.HasWinner())
}

func TestHandleMessage_RejectionReportFails(t *testing.T) {
	t.Parallel()
	f := newSellerFixture(t)

	f.transport.EXPECT().Unicast(rivalID, protocol.CmdError, gomock.Any()).Return(biddingerrors.ErrPeerNotFound)
	err := f.router.HandleMessage(rivalID, frame(t, protocol.CmdPeerPlacePrice, offer("item1", "1")))
	require.ErrorIs(t, err, biddingerrors.ErrPeerNotFound)
}

func TestHandleMessage_OfferFromLocalIdentity(t *testing.T) {
	t.Parallel()
	f := newSellerFixture(t)

	err := f.router.HandleMessage(sellerID, frame(t, protocol.CmdPeerPlacePrice, offer("item1", "99")))
	require.ErrorIs(t, err, biddingerrors.ErrSelfBidNotAllowed)

	record, getErr := f.repo.Get("item1")
	require.NoError(t, getErr)
	require.False(t, record.HasWinner())

	last, ok := f.history.Last(eventbus.MessageAdded)
	require.True(t, ok)
	require.Equal(t, FromError, last.From)
}

func TestHandleMessage_DisplayAndError(t *testing.T) {
	t.Parallel()
	f := newSellerFixture(t)

	require.NoError(t, f.router.HandleMessage(buyerID, frame(t, protocol.CmdSendMessageLocally, "hello")))
	require.NoError(t, f.router.HandleMessage(buyerID, frame(t, protocol.CmdError, "price is too low")))

	msgs := f.history.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, "bbbbbb", msgs[0].From, "display messages carry the sender's short label")
	require.Equal(t, "hello", msgs[0].Message)
	require.Equal(t, FromError, msgs[1].From)
	require.Equal(t, "price is too low", msgs[1].Message)
}

func TestHandleMessage_UnknownAndMalformed(t *testing.T) {
	t.Parallel()
	f := newSellerFixture(t)
	before := f.repo.List()

	err := f.router.HandleMessage(buyerID, []byte(`{"command":"STEAL_ITEM","data":{"itemId":"item1"}}`))
	require.ErrorIs(t, err, biddingerrors.ErrUnknownCommand)
	require.Equal(t, biddingerrors.KindProtocol, biddingerrors.KindOf(err))

	err = f.router.HandleMessage(buyerID, []byte(`garbage`))
	require.ErrorIs(t, err, biddingerrors.ErrMalformedMessage)

	f.transport.EXPECT().Unicast(buyerID, protocol.CmdError, biddingerrors.ErrMalformedMessage.Error()).Return(nil)
	err = f.router.HandleMessage(buyerID, []byte(`{"command":"PEER_PLACE_PRICE","data":"not an object"}`))
	require.ErrorIs(t, err, biddingerrors.ErrMalformedMessage)

	err = f.router.HandleMessage(buyerID, []byte(`{"command":"SEND_MESSAGE_LOCALLY","data":42}`))
	require.ErrorIs(t, err, biddingerrors.ErrMalformedMessage)

	require.Equal(t, before, f.repo.List())
	require.Empty(t, f.history.All())
}

func TestPlacePriceIntent(t *testing.T) {
	t.Parallel()

	t.Run("unicast_to_seller", func(t *testing.T) {
		t.Parallel()
		f := newSellerFixture(t)
		buyer := New(buyerID, bidding.NewBiddingService(repository.NewMemoryRepo()), f.transport, eventbus.New())

		f.transport.EXPECT().Unicast(sellerID, protocol.CmdPeerPlacePrice, offer("item1", "15")).Return(nil)
		require.NoError(t, buyer.PlacePrice(sellerID, "item1", "15"))
	})

	t.Run("self_bid_never_touches_network", func(t *testing.T) {
		t.Parallel()
		f := newSellerFixture(t)
		f.transport.EXPECT().Unicast(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		err := f.router.PlacePrice(sellerID, "item1", "15")
		require.ErrorIs(t, err, biddingerrors.ErrSelfBidNotAllowed)

		last, ok := f.history.Last(eventbus.MessageAdded)
		require.True(t, ok)
		require.Equal(t, FromError, last.From)
		require.Equal(t, biddingerrors.ErrSelfBidNotAllowed.Error(), last.Message)
	})

	t.Run("empty_input", func(t *testing.T) {
		t.Parallel()
		f := newSellerFixture(t)

		for _, in := range [][3]string{{"", "item1", "1"}, {buyerID, "", "1"}, {buyerID, "item1", "  "}} {
			err := f.router.PlacePrice(in[0], in[1], in[2])
			require.ErrorIs(t, err, biddingerrors.ErrInvalidInput)
		}
		last, ok := f.history.Last(eventbus.MessageAdded)
		require.True(t, ok)
		require.Equal(t, invalidOfferMessage, last.Message)
	})

	t.Run("seller_disconnected", func(t *testing.T) {
		t.Parallel()
		f := newSellerFixture(t)

		f.transport.EXPECT().Unicast(rivalID, protocol.CmdPeerPlacePrice, gomock.Any()).
			Return(fmt.Errorf("transport: unicast: %w", biddingerrors.ErrPeerNotFound))
		err := f.router.PlacePrice(rivalID, "item1", "15")
		require.ErrorIs(t, err, biddingerrors.ErrPeerNotFound)

		last, ok := f.history.Last(eventbus.MessageAdded)
		require.True(t, ok)
		require.Equal(t, biddingerrors.ErrPeerNotFound.Error(), last.Message)
	})
}

func TestCreateAndCloseIntents(t *testing.T) {
	t.Parallel()

	t.Run("create_broadcasts_summary", func(t *testing.T) {
		t.Parallel()
		f := newSellerFixture(t)

		want := "User " + sellerID + " is selling item: item2 with price 30!"
		f.transport.EXPECT().Broadcast(protocol.CmdSendMessageLocally, want).Return(nil)

		summary, err := f.router.CreateBid("item2", "30")
		require.NoError(t, err)
		require.Equal(t, want, summary)

		last, ok := f.history.Last(eventbus.MessageAdded)
		require.True(t, ok)
		require.Equal(t, FromAll, last.From)
	})

	t.Run("create_failure_stays_local", func(t *testing.T) {
		t.Parallel()
		f := newSellerFixture(t)
		f.transport.EXPECT().Broadcast(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.router.CreateBid("item1", "30")
		require.ErrorIs(t, err, biddingerrors.ErrItemAlreadyExists)
		_, err = f.router.CreateBid("item3", "-3")
		require.ErrorIs(t, err, biddingerrors.ErrInvalidPrice)

		msgs := f.history.Messages()
		require.Len(t, msgs, 2)
		require.Equal(t, biddingerrors.ErrItemAlreadyExists.Error(), msgs[0].Message)
		require.Equal(t, biddingerrors.ErrInvalidPrice.Error(), msgs[1].Message)
	})

	t.Run("close_names_winner", func(t *testing.T) {
		t.Parallel()
		f := newSellerFixture(t)

		f.transport.EXPECT().Broadcast(protocol.CmdSendMessageLocally, gomock.Any()).Return(nil).Times(2)
		require.NoError(t, f.router.HandleMessage(buyerID, frame(t, protocol.CmdPeerPlacePrice, offer("item1", "15"))))

		summary, err := f.router.CloseBid("item1")
		require.NoError(t, err)
		require.Contains(t, summary, "User "+buyerID+" has won the item!")
	})

	t.Run("close_failure_stays_local", func(t *testing.T) {
		t.Parallel()
		f := newSellerFixture(t)
		f.transport.EXPECT().Broadcast(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.router.CloseBid("missing")
		require.ErrorIs(t, err, biddingerrors.ErrItemNotFound)
	})
}

func TestAnnounceAndPeerCount(t *testing.T) {
	t.Parallel()
	f := newSellerFixture(t)

	f.transport.EXPECT().Broadcast(protocol.CmdSendMessageLocally, "custom update").Return(errors.New("encode failed"))
	f.router.AnnounceBid("custom update")
	last, ok := f.history.Last(eventbus.MessageAdded)
	require.True(t, ok, "local display happens even when the broadcast fails")
	require.Equal(t, "custom update", last.Message)

	f.router.PeerCountChanged(3)
	count, ok := f.history.Last(eventbus.UpdatePeerCount)
	require.True(t, ok)
	require.Equal(t, 3, count.PeerCount)
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	require.Equal(t, biddingerrors.ErrPriceTooLow.Error(), Describe(errors.Join(errors.New("ctx"), biddingerrors.ErrPriceTooLow)))
	require.Equal(t, "other", Describe(errors.New("other")))
}

func TestHandleMessage_UndecodableOfferIsReported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		unicastTo error
		expectErr error
	}{
		{
			name:      "numeric_item_id",
			raw:       `{"command":"PEER_PLACE_PRICE","data":{"itemId":7,"price":"20"}}`,
			expectErr: biddingerrors.ErrMalformedMessage,
		},
		{
			name:      "buyer_gone_before_report",
			raw:       `{"command":"PEER_PLACE_PRICE","data":[1,2]}`,
			unicastTo: biddingerrors.ErrPeerNotFound,
			expectErr: biddingerrors.ErrPeerNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newSellerFixture(t)
			before := f.repo.List()

			f.transport.EXPECT().Unicast(buyerID, protocol.CmdError, biddingerrors.ErrMalformedMessage.Error()).Return(tc.unicastTo)
			f.transport.EXPECT().Broadcast(gomock.Any(), gomock.Any()).Times(0)

			err := f.router.HandleMessage(buyerID, []byte(tc.raw))
			require.ErrorIs(t, err, tc.expectErr)
			require.Equal(t, before, f.repo.List())
			require.Empty(t, f.history.Messages())
		})
	}
}

func TestHandleMessage_StateMachineNotReached(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		from      string
		raw       func(t *testing.T) []byte
		expectErr error
	}{
		{
			name:      "offer_from_local_identity",
			from:      sellerID,
			raw:       func(t *testing.T) []byte { return frame(t, protocol.CmdPeerPlacePrice, offer("item1", "99")) },
			expectErr: biddingerrors.ErrSelfBidNotAllowed,
		},
		{
			name:      "unknown_command",
			from:      buyerID,
			raw:       func(*testing.T) []byte { return []byte(`{"command":"PEER_CLOSE_BID","data":{"itemId":"item1"}}`) },
			expectErr: biddingerrors.ErrUnknownCommand,
		},
		{
			name:      "display_message",
			from:      buyerID,
			raw:       func(t *testing.T) []byte { return frame(t, protocol.CmdSendMessageLocally, "hi") },
			expectErr: nil,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			bids := NewMockBidProtocol(ctrl)
			transport := NewMockTransport(ctrl)

			bids.EXPECT().PlacePrice(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			bids.EXPECT().CreateBid(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			bids.EXPECT().CloseBid(gomock.Any(), gomock.Any()).Times(0)

			r := New(sellerID, bids, transport, eventbus.New())
			err := r.HandleMessage(tc.from, tc.raw(t))
			if tc.expectErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.expectErr)
		})
	}
}

func TestPlacePrice_AcceptedOfferUsesProtocolSummary(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	bids := NewMockBidProtocol(ctrl)
	transport := NewMockTransport(ctrl)
	bus := eventbus.New()
	history := eventbus.NewHistory(bus, 10)

	bids.EXPECT().PlacePrice(buyerID, "item1", "12.5").Return("accepted", nil)
	transport.EXPECT().Broadcast(protocol.CmdSendMessageLocally, "accepted").Return(nil)

	r := New(sellerID, bids, transport, bus)
	require.NoError(t, r.HandleMessage(buyerID, []byte(`{"command":"PEER_PLACE_PRICE","data":{"itemId":"item1","price":12.5}}`)))

	last, ok := history.Last(eventbus.MessageAdded)
	require.True(t, ok)
	require.Equal(t, "accepted", last.Message)
}
