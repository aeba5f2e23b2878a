package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GridFSStore MongoDB GridFS 存储
// bucket 每次调用单独创建，读写 deadline 不跨请求共享
type GridFSStore struct {
	client     *mongo.Client
	db         *mongo.Database
	bucketName string
}

// NewGridFSStore 连接 MongoDB 并打开 bucket
func NewGridFSStore(ctx context.Context, uri, database, bucketName string) (*GridFSStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo failed: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo failed: %w", err)
	}

	store := newGridFSStore(client, database, bucketName)
	if _, err := store.bucket(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return store, nil
}

func newGridFSStore(client *mongo.Client, database, bucketName string) *GridFSStore {
	return &GridFSStore{client: client, db: client.Database(database), bucketName: bucketName}
}

// bucket 按调用创建 bucket，并把 ctx 的 deadline 设置到这个实例上
func (s *GridFSStore) bucket(ctx context.Context) (*gridfs.Bucket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bucket, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(s.bucketName))
	if err != nil {
		return nil, fmt.Errorf("open gridfs bucket failed: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := bucket.SetReadDeadline(deadline); err != nil {
			return nil, err
		}
		if err := bucket.SetWriteDeadline(deadline); err != nil {
			return nil, err
		}
	}
	return bucket, nil
}

// Put 上传文件；同名旧版本会在上传成功后删除
func (s *GridFSStore) Put(ctx context.Context, name string, r io.Reader, size int64) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	bucket, err := s.bucket(ctx)
	if err != nil {
		return err
	}
	existing, err := findIDs(ctx, bucket, name)
	if err != nil {
		return err
	}

	opts := options.GridFSUpload().SetMetadata(bson.M{"size": size})
	if _, err := bucket.UploadFromStream(name, r, opts); err != nil {
		return fmt.Errorf("gridfs upload failed: %w", err)
	}

	for _, id := range existing {
		_ = bucket.DeleteContext(ctx, id)
	}
	return nil
}

// Open 按文件名打开最新版本
func (s *GridFSStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	bucket, err := s.bucket(ctx)
	if err != nil {
		return nil, err
	}
	stream, err := bucket.OpenDownloadStreamByName(name)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gridfs open failed: %w", err)
	}
	return stream, nil
}

// Delete 删除同名的全部版本
func (s *GridFSStore) Delete(ctx context.Context, name string) error {
	bucket, err := s.bucket(ctx)
	if err != nil {
		return err
	}
	ids, err := findIDs(ctx, bucket, name)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := bucket.DeleteContext(ctx, id); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
			return fmt.Errorf("gridfs delete failed: %w", err)
		}
	}
	return nil
}

// Close 断开连接
func (s *GridFSStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func findIDs(ctx context.Context, bucket *gridfs.Bucket, name string) ([]primitive.ObjectID, error) {
	cursor, err := bucket.FindContext(ctx, bson.M{"filename": name})
	if err != nil {
		return nil, fmt.Errorf("gridfs find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var files []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &files); err != nil {
		return nil, fmt.Errorf("gridfs decode failed: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.ID)
	}
	return ids, nil
}
