// Package objectstore provides the NATS JetStream implementation of the
// core.ObjectStore capability, holding source documents and produced
// audio artifacts.
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NatsObjectStore is a core.ObjectStore backed by one JetStream object
// store bucket.
type NatsObjectStore struct {
	bucket string
	store  nats.ObjectStore
}

// New returns a store bound to the named bucket, creating the bucket when
// it does not exist yet.
func New(jetstreamContext nats.JetStreamContext, bucketName string) (*NatsObjectStore, error) {
	store, err := createOrBindBucket(jetstreamContext, bucketName)
	if err != nil {
		return nil, err
	}

	return &NatsObjectStore{
		bucket: bucketName,
		store:  store,
	}, nil
}

// createOrBindBucket creates first and binds on ErrBucketExists, so
// several workers can start against the same bucket without racing.
func createOrBindBucket(
	jetstreamContext nats.JetStreamContext,
	bucketName string,
) (nats.ObjectStore, error) {
	store, err := jetstreamContext.CreateObjectStore(&nats.ObjectStoreConfig{
		Bucket:      bucketName,
		Description: "doc2speech " + bucketName + " bucket",
		TTL:         0,
		MaxBytes:    0,
		Storage:     nats.FileStorage,
		Replicas:    1,
		Placement:   nil,
		Metadata:    nil,
		Compression: false,
	})
	if err == nil {
		return store, nil
	}

	if !errors.Is(err, jetstream.ErrBucketExists) {
		return nil, fmt.Errorf(
			"failed to create object store bucket '%s': %w",
			bucketName,
			err,
		)
	}

	store, err = jetstreamContext.ObjectStore(bucketName)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to bind to object store bucket '%s': %w",
			bucketName,
			err,
		)
	}

	return store, nil
}

// Download retrieves the object stored under key.
func (n *NatsObjectStore) Download(_ context.Context, key string) ([]byte, error) {
	obj, err := n.store.Get(key)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to download object '%s' from bucket '%s': %w",
			key,
			n.bucket,
			err,
		)
	}

	data, readErr := io.ReadAll(obj)
	closeErr := obj.Close()

	if readErr != nil {
		return nil, fmt.Errorf("failed to read object '%s': %w", key, readErr)
	}

	if closeErr != nil {
		return data, fmt.Errorf("failed to close object '%s': %w", key, closeErr)
	}

	return data, nil
}

// Upload stores data under key, overwriting any previous object.
func (n *NatsObjectStore) Upload(_ context.Context, key string, data []byte) error {
	_, err := n.store.Put(&nats.ObjectMeta{
		Name:        key,
		Description: "",
		Headers:     nil,
		Metadata:    nil,
		Opts:        nil,
	}, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf(
			"failed to upload object '%s' to bucket '%s': %w",
			key,
			n.bucket,
			err,
		)
	}

	return nil
}
