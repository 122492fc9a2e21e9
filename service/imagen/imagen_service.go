package imagen

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"administracion.GO/config"
	imagenEntity "administracion.GO/model/entity/imagen"
	imagenRepo "administracion.GO/model/repository/imagen"
)

// TamanoMaximo bounds upload bodies, enforced before any storage call.
const TamanoMaximo = 10 * 1024 * 1024 // 10 MiB

// BlobStore is the object-storage contract the service consumes.
type BlobStore interface {
	Put(ctx context.Context, ruta string, r io.Reader, size int64, contentType, nombreOriginal string) error
	Remove(ctx context.Context, ruta string) error
	RemoveAll(ctx context.Context, rutas []string) error
}

// NombreObjeto builds the storage path: entity-type prefix, upload epoch
// millis and a random token keep it unique without a collision check.
func NombreObjeto(tipoEntidad, nombreArchivo string) string {
	extension := ""
	if i := strings.LastIndex(nombreArchivo, "."); i >= 0 {
		extension = nombreArchivo[i+1:]
	}
	return fmt.Sprintf("%s/%d-%s.%s",
		strings.ToLower(tipoEntidad), time.Now().UnixMilli(), uuid.NewString(), extension)
}

// Service coordinates blob writes with metadata rows.
type Service struct {
	repo  *imagenRepo.ImagenRepository
	blobs BlobStore
}

func NewService(repo *imagenRepo.ImagenRepository, blobs BlobStore) *Service {
	return &Service{repo: repo, blobs: blobs}
}

// SubirInput carries a validated upload.
type SubirInput struct {
	TipoEntidad   string
	IDEntidad     uint64
	NombreArchivo string
	TipoArchivo   string
	Tamano        int64
	LoginRegistro string
	Contenido     io.Reader
}

// Subir writes the blob first, then the metadata row. A metadata failure
// after a successful put leaves the blob orphaned; no compensating delete.
func (s *Service) Subir(ctx context.Context, in SubirInput) (*imagenEntity.Imagen, error) {
	ruta := NombreObjeto(in.TipoEntidad, in.NombreArchivo)

	if err := s.blobs.Put(ctx, ruta, in.Contenido, in.Tamano, in.TipoArchivo, in.NombreArchivo); err != nil {
		return nil, err
	}

	login := in.LoginRegistro
	if login == "" {
		login = "sistema"
	}
	img := &imagenEntity.Imagen{
		TipoEntidad:   in.TipoEntidad,
		IDEntidad:     in.IDEntidad,
		RutaImagen:    ruta,
		NombreArchivo: in.NombreArchivo,
		TipoArchivo:   in.TipoArchivo,
		TamanoBytes:   in.Tamano,
		LoginRegistro: login,
	}
	if err := s.repo.Crear(img); err != nil {
		return nil, err
	}
	return img, nil
}

// ListarPorEntidad returns the metadata rows for one entity.
func (s *Service) ListarPorEntidad(tipoEntidad string, idEntidad uint64) ([]imagenEntity.Imagen, error) {
	return s.repo.ListarPorEntidad(tipoEntidad, idEntidad)
}

// BuscarPorID returns one metadata row.
func (s *Service) BuscarPorID(id uint64) (*imagenEntity.Imagen, error) {
	return s.repo.BuscarPorID(id)
}

// EliminarPorID looks the row up, removes the blob, then the row. A blob
// removal failure aborts and leaves the metadata row in place.
func (s *Service) EliminarPorID(ctx context.Context, id uint64) error {
	img, err := s.repo.BuscarPorID(id)
	if err != nil {
		return err
	}
	if err := s.blobs.Remove(ctx, img.RutaImagen); err != nil {
		return err
	}
	return s.repo.Eliminar(id)
}

// EliminarPorEntidad removes all blobs of an entity in one batched call and
// then deletes the metadata rows in one statement. Zero rows succeeds
// trivially with no storage call.
func (s *Service) EliminarPorEntidad(ctx context.Context, tipoEntidad string, idEntidad uint64) (int, error) {
	imagenes, err := s.repo.ListarPorEntidad(tipoEntidad, idEntidad)
	if err != nil {
		return 0, err
	}
	if len(imagenes) == 0 {
		return 0, nil
	}

	rutas := make([]string, len(imagenes))
	for i, img := range imagenes {
		rutas[i] = img.RutaImagen
	}
	if err := s.blobs.RemoveAll(ctx, rutas); err != nil {
		return 0, err
	}
	if err := s.repo.EliminarPorEntidad(tipoEntidad, idEntidad); err != nil {
		return 0, err
	}
	return len(imagenes), nil
}

// URLPublica annotates a stored path with its retrieval URL, computed at
// read time and never persisted.
func URLPublica(ruta string) string {
	return config.MinioPublicURL(ruta)
}
