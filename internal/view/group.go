package view

import (
	"github.com/wady/orderhub/internal/domain/inbox"
	"github.com/wady/orderhub/internal/domain/order"
)

// Bucket names for the order hub view
const (
	BucketWaitingForReview = "waiting for review"
	BucketUploadingPending = "uploading pending"
	BucketUploadSuccessful = "upload successful"
	BucketArchived         = "archived"
)

// Bucket names for the inbox view
const (
	BucketOrders    = "orders"
	BucketNotOrders = "not orders"
)

// BucketTable is a static status-to-bucket mapping with a fixed bucket
// order and a designated default for statuses absent from the table.
type BucketTable struct {
	Names   []string
	Assign  map[string]string
	Default string
}

// OrderBucketTable maps order statuses onto the order hub buckets.
// Unrecognized statuses fall into "waiting for review" rather than being
// dropped.
func OrderBucketTable() BucketTable {
	return BucketTable{
		Names: []string{
			BucketWaitingForReview,
			BucketUploadingPending,
			BucketUploadSuccessful,
			BucketArchived,
		},
		Assign: map[string]string{
			order.StatusNew.String():       BucketWaitingForReview,
			order.StatusReviewing.String(): BucketUploadingPending,
			order.StatusReviewed.String():  BucketUploadSuccessful,
			order.StatusArchived.String():  BucketArchived,
		},
		Default: BucketWaitingForReview,
	}
}

// MessageBucketTable maps message classifications onto the two inbox
// columns. Unrecognized classifications count as not-orders.
func MessageBucketTable() BucketTable {
	return BucketTable{
		Names: []string{BucketOrders, BucketNotOrders},
		Assign: map[string]string{
			inbox.MessageStatusOrder.String():    BucketOrders,
			inbox.MessageStatusNotOrder.String(): BucketNotOrders,
		},
		Default: BucketNotOrders,
	}
}

// Bucket is one named, status-derived partition of records
type Bucket[T any] struct {
	Name    string
	Records []T
}

// Count returns the number of records in the bucket
func (b Bucket[T]) Count() int { return len(b.Records) }

// Partition splits records into the table's buckets by status. Every
// record lands in exactly one bucket and relative input order is
// preserved within each bucket. Buckets come back in the table's fixed
// order, empty ones included.
func Partition[T any](tbl BucketTable, recs []T, status func(T) string) []Bucket[T] {
	byName := make(map[string]*Bucket[T], len(tbl.Names))
	buckets := make([]Bucket[T], len(tbl.Names))
	for idx, name := range tbl.Names {
		buckets[idx] = Bucket[T]{Name: name}
		byName[name] = &buckets[idx]
	}

	for _, rec := range recs {
		name, ok := tbl.Assign[status(rec)]
		if !ok {
			name = tbl.Default
		}
		bucket, ok := byName[name]
		if !ok {
			bucket = byName[tbl.Default]
		}
		bucket.Records = append(bucket.Records, rec)
	}
	return buckets
}
