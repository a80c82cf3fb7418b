package repositoryimpl

import (
	"context"
	"fmt"

	"github.com/kazz187/agileboard/internal/task"
	"github.com/kazz187/agileboard/pkg/cerr"
	"github.com/kazz187/agileboard/pkg/storage"
)

// FileRepository stores all tasks in a single document at path.
type FileRepository struct {
	storage storage.Storage
	path    string
	codec   Codec
}

func NewFileRepository(s storage.Storage, path string) *FileRepository {
	return &FileRepository{
		storage: s,
		path:    path,
		codec:   CodecFor(path),
	}
}

func (r *FileRepository) Path() string {
	return r.path
}

func (r *FileRepository) Load(ctx context.Context) ([]*task.Task, error) {
	data, err := r.storage.Read(ctx, r.path)
	if err != nil {
		return nil, cerr.WrapStorageReadError(r.path, err)
	}
	doc, tree, err := r.codec.Decode(data)
	if err != nil {
		return nil, cerr.NewError(cerr.DataLoss, fmt.Sprintf("could not decode %s", r.path), err)
	}
	if err := validateDocument(tree); err != nil {
		return nil, cerr.NewError(cerr.DataLoss, fmt.Sprintf("could not decode %s", r.path), err)
	}
	return doc.Decode(), nil
}

func (r *FileRepository) Save(ctx context.Context, tasks []*task.Task) error {
	data, err := r.codec.Encode(task.NewDocument(tasks))
	if err != nil {
		return cerr.NewError(cerr.Internal, "failed to encode tasks", err)
	}
	if err := r.storage.Write(ctx, r.path, data); err != nil {
		return cerr.WrapStorageWriteError(r.path, err)
	}
	return nil
}
