package errors

import "errors"

// Sentinelas compartilhadas entre services. Cada service define também
// erros de negócio próprios; estas cobrem condições transversais do
// motor de ponto.
var (
	// ErrOptimisticLock conflito de lock otimista: o registro foi
	// modificado por outra operação entre a leitura e a escrita.
	ErrOptimisticLock = errors.New("registro modificado por outra operação, recarregue e tente novamente")

	// ErrConflict o estado final pretendido diverge do estado atual do
	// registro (ex.: fechar um ponto já fechado por outro caminho com
	// aprovador diferente).
	ErrConflict = errors.New("estado do registro conflita com a operação solicitada")

	// ErrInvalidPairRef referência de par inválida: pair_ref só pode
	// apontar de uma saída para uma entrada existente.
	ErrInvalidPairRef = errors.New("pair_ref inválido: somente saída pode referenciar entrada")
)
