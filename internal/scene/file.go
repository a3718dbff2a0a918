package scene

import (
	"context"

	"posecraft/internal/pose"
)

var _ Scene = (*File)(nil)

// File is a Scene backed by a document on disk. Reads serve from the
// loaded document; writes mutate it in memory until Flush rewrites the
// file.
type File struct {
	path string
	doc  *Document
}

func OpenFile(path string) (*File, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return &File{path: path, doc: doc}, nil
}

func (f *File) Path() string { return f.path }

func (f *File) Document() *Document { return f.doc }

func (f *File) Names(ctx context.Context) ([]string, error) {
	return f.doc.Names(ctx)
}

func (f *File) State(ctx context.Context, name string) (pose.State, error) {
	return f.doc.State(ctx, name)
}

func (f *File) SetState(ctx context.Context, name string, st pose.State) error {
	return f.doc.SetState(ctx, name, st)
}

func (f *File) Flush() error {
	return f.doc.Save(f.path)
}
