package exchange

import (
	"testing"

	custodyv1 "github.com/jscottmiller/patronage/internal/domain/custody/v1"
	exchangev1 "github.com/jscottmiller/patronage/internal/domain/exchange/v1"
	"github.com/jscottmiller/patronage/internal/usecase/book"
	"github.com/jscottmiller/patronage/internal/usecase/custody"
	"github.com/jscottmiller/patronage/internal/usecase/ledger"
)

func setupBenchmarkExchange(b *testing.B) (*Exchange, custodyv1.Custodian) {
	b.Helper()

	custodian := custody.New()
	ex := New(book.New(), ledger.New(), custodian)
	return ex, custodian
}

func BenchmarkExchange_PostRestingBids(b *testing.B) {
	ex, _ := setupBenchmarkExchange(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		price := int64(i%100 + 1)
		if _, err := ex.PostOffer(exchangev1.Bid, price, 1, price, "bidder"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExchange_MatchedPairs(b *testing.B) {
	ex, custodian := setupBenchmarkExchange(b)
	if err := custodian.Give("seller", int64(b.N)); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ex.PostOffer(exchangev1.Bid, 100, 1, 100, "bidder"); err != nil {
			b.Fatal(err)
		}
		if _, err := ex.PostOffer(exchangev1.Ask, 100, 1, 0, "seller"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExchange_SweepDeepBook(b *testing.B) {
	ex, custodian := setupBenchmarkExchange(b)
	if err := custodian.Give("seller", int64(b.N)*10); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := int64(0); j < 10; j++ {
			if _, err := ex.PostOffer(exchangev1.Ask, 100+j, 1, 0, "seller"); err != nil {
				b.Fatal(err)
			}
		}
		if _, err := ex.PostOffer(exchangev1.Bid, 110, 10, 1100, "bidder"); err != nil {
			b.Fatal(err)
		}
	}
}
