package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	exchangev1 "github.com/jscottmiller/patronage/internal/domain/exchange/v1"
	orderfeedv1 "github.com/jscottmiller/patronage/internal/domain/orderfeed/v1"
)

// generateAccountID creates a random alphanumeric account ID.
func generateAccountID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	var result strings.Builder
	for i := 0; i < length; i++ {
		result.WriteByte(charset[rand.Intn(len(charset))])
	}
	return result.String()
}

// generateRequests creates post requests around a base price. Bids carry
// exactly price times quantity so the engine accepts them, and accounts are
// drawn from a small pool so generated offers actually cross.
//
// Asks are only generated when includeAsks is set: the engine rejects an ask
// unless its account already holds shares with the custodian, and the feed
// carries no share-provisioning request.
func generateRequests(count int, basePrice, priceSpread int64, includeAsks bool) []orderfeedv1.OfferRequest {
	accounts := make([]string, 8)
	for i := range accounts {
		accounts[i] = generateAccountID(rand.Intn(4) + 6)
	}

	requests := make([]orderfeedv1.OfferRequest, count)
	for i := 0; i < count; i++ {
		isBid := !includeAsks || rand.Float64() < 0.5

		quantity := int64(rand.Intn(10) + 1)

		var price int64
		if isBid {
			price = basePrice - rand.Int63n(priceSpread+1) + priceSpread/2
		} else {
			price = basePrice + rand.Int63n(priceSpread+1) - priceSpread/2
		}
		if price <= 0 {
			price = basePrice
		}

		request := orderfeedv1.OfferRequest{
			Type:     orderfeedv1.RequestTypePost,
			Account:  accounts[rand.Intn(len(accounts))],
			Side:     uint8(exchangev1.Ask),
			Price:    price,
			Quantity: quantity,
		}
		if isBid {
			request.Side = uint8(exchangev1.Bid)
			request.AttachedValue = price * quantity
		}

		requests[i] = request
	}

	return requests
}

func main() {
	var (
		brokers     = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic       = flag.String("topic", "offers", "Kafka topic name")
		file        = flag.String("file", "", "JSON file with offer requests (optional, generates requests if not provided)")
		delay       = flag.Duration("delay", 100*time.Millisecond, "Delay between sending requests")
		count       = flag.Int("count", 1000, "Number of requests to generate")
		basePrice   = flag.Int64("base-price", 100, "Base price for offers")
		priceSpread = flag.Int64("price-spread", 20, "Price spread range")
		includeAsks = flag.Bool("asks", false, "Generate ask requests too; their accounts must already hold shares with the engine's custodian or every ask is rejected")
	)
	flag.Parse()

	rand.Seed(time.Now().UnixNano())

	writer := &kafka.Writer{
		Addr:         kafka.TCP(*brokers),
		Topic:        *topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	ctx := context.Background()

	var requests []orderfeedv1.OfferRequest
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("Failed to read file %s: %v", *file, err)
		}
		if err := json.Unmarshal(data, &requests); err != nil {
			log.Fatalf("Failed to parse JSON from file: %v", err)
		}
		log.Printf("Loaded %d requests from file: %s", len(requests), *file)
	} else {
		log.Printf("Generating %d requests...", *count)
		requests = generateRequests(*count, *basePrice, *priceSpread, *includeAsks)
	}

	log.Printf("Sending requests to Kafka broker: %s, topic: %s", *brokers, *topic)
	log.Printf("Delay between requests: %v", *delay)

	for i, request := range requests {
		payload, err := json.Marshal(request)
		if err != nil {
			log.Printf("Failed to marshal request %d: %v", i+1, err)
			continue
		}

		msg := kafka.Message{
			Key:   []byte(request.Account),
			Value: payload,
			Time:  time.Now(),
		}

		if err := writer.WriteMessages(ctx, msg); err != nil {
			log.Printf("Failed to send request %d (%s): %v", i+1, request.Account, err)
			continue
		}

		if (i+1)%100 == 0 || i == len(requests)-1 {
			side := "ASK"
			if request.Side == uint8(exchangev1.Bid) {
				side = "BID"
			}
			log.Printf("Sent request %d/%d: %s | %s | qty %d @ %d",
				i+1, len(requests), request.Account, side, request.Quantity, request.Price)
		}

		if i < len(requests)-1 {
			time.Sleep(*delay)
		}
	}

	log.Printf("Successfully sent all %d requests!", len(requests))

	bids := 0
	asks := 0
	for _, request := range requests {
		if request.Side == uint8(exchangev1.Bid) {
			bids++
		} else {
			asks++
		}
	}

	log.Printf("--- Summary ---")
	log.Printf("Total Requests: %d", len(requests))
	log.Printf("Bids: %d", bids)
	log.Printf("Asks: %d", asks)
}
