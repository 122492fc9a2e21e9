package inventario

import "fmt"

// Adjustment directions.
const (
	AjusteEntrada = "ENTRADA"
	AjusteSalida  = "SALIDA"
)

// TipoAjusteValido reports whether tipo is ENTRADA or SALIDA.
func TipoAjusteValido(tipo string) bool {
	return tipo == AjusteEntrada || tipo == AjusteSalida
}

// ErrStockInsuficiente signals a SALIDA that would drive the on-hand
// quantity negative. It carries both quantities for the response body.
type ErrStockInsuficiente struct {
	CantidadActual     int64
	CantidadSolicitada int64
}

func (e *ErrStockInsuficiente) Error() string {
	return fmt.Sprintf("no hay suficiente inventario para realizar la salida (actual=%d, solicitada=%d)",
		e.CantidadActual, e.CantidadSolicitada)
}

// Ajustar converts a signed adjustment into the new on-hand quantity.
// ENTRADA adds the magnitude of cantidad, SALIDA subtracts it; a SALIDA
// whose result would be negative fails without mutating anything.
func Ajustar(actual, cantidad int64, tipo string) (int64, error) {
	magnitud := cantidad
	if magnitud < 0 {
		magnitud = -magnitud
	}
	if tipo == AjusteEntrada {
		return actual + magnitud, nil
	}
	nueva := actual - magnitud
	if nueva < 0 {
		return 0, &ErrStockInsuficiente{CantidadActual: actual, CantidadSolicitada: cantidad}
	}
	return nueva, nil
}
