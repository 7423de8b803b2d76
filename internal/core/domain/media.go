package domain

import "errors"

var ErrUnsupportedMedia = errors.New("only image files are allowed")
var ErrFileTooLarge = errors.New("file exceeds the maximum allowed size")
var ErrStorageWrite = errors.New("failed to store file")
