package repository

import "errors"

var ErrNotFound = errors.New("снапшот не найден")
var ErrCorruptSnapshot = errors.New("снапшот повреждён")
