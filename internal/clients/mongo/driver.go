package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// driver is the seam between Init/Shutdown and the real driver, swapped in tests.
type driver interface {
	Connect(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error)
	Ping(ctx context.Context, cli *mongo.Client) error
	Hello(ctx context.Context, cli *mongo.Client) (helloReply, error)
	Disconnect(ctx context.Context, cli *mongo.Client) error
}

// helloReply holds the fields of the hello command we care about.
type helloReply struct {
	SetName string `bson:"setName"`
	Msg     string `bson:"msg"`
}
