package cupom

import "sync"

// Store é o único recurso mutável compartilhado do sistema: a coleção
// completa de cupons carregada da API. A mutação é sempre por substituição
// integral (recarga) ou por troca/remoção dirigida por id — nunca por índice.
type Store struct {
	mu      sync.RWMutex
	cupons  []CupomFiscal
	offline bool
}

func NovoStore() *Store {
	return &Store{}
}

// DefinirTodos troca a coleção inteira por um novo snapshot.
func (s *Store) DefinirTodos(cupons []CupomFiscal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cupons = append([]CupomFiscal(nil), cupons...)
}

// DefinirOffline marca o modo offline após falha de rede na carga.
func (s *Store) DefinirOffline(offline bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offline = offline
}

func (s *Store) Offline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offline
}

// Snapshot devolve uma cópia consistente da coleção; visões derivadas
// (duplicatas, filtro) são sempre calculadas sobre um snapshot, nunca sobre
// a coleção em mutação.
func (s *Store) Snapshot() []CupomFiscal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]CupomFiscal(nil), s.cupons...)
}

func (s *Store) Tamanho() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cupons)
}

// BuscarPorID procura um cupom pelo id opaco.
func (s *Store) BuscarPorID(id string) (CupomFiscal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cupons {
		if c.ID == id {
			return c, true
		}
	}
	return CupomFiscal{}, false
}

// Adicionar insere o cupom recém-confirmado no topo da coleção.
func (s *Store) Adicionar(c CupomFiscal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cupons = append([]CupomFiscal{c}, s.cupons...)
}

// Substituir troca a entrada local pela representação confirmada pelo
// servidor. Retorna false quando o id não está na coleção.
func (s *Store) Substituir(id string, novo CupomFiscal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.cupons {
		if c.ID == id {
			s.cupons[i] = novo
			return true
		}
	}
	return false
}

// Remover poda a entrada local após exclusão confirmada no servidor.
func (s *Store) Remover(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.cupons {
		if c.ID == id {
			s.cupons = append(s.cupons[:i], s.cupons[i+1:]...)
			return true
		}
	}
	return false
}
