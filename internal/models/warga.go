package models

import "time"

// Record lifecycle states. Form submissions arrive PENDING; admin creation
// and the validate action produce VALIDATED.
const (
	StatusPending   = "PENDING"
	StatusValidated = "VALIDATED"
)

// Warga is one registered household, keyed by its head. The Jumlah* fields
// are pre-aggregated member counters maintained at the row level; the list
// fields are stored as JSON-encoded text in the warga table and decoded at
// the repository boundary.
type Warga struct {
	ID           int64      `json:"id"`
	Nama         string     `json:"nama"`
	NoKK         string     `json:"noKK"`
	Gender       string     `json:"gender"`
	TanggalLahir *time.Time `json:"tanggalLahir,omitempty"`
	Lingkungan   string     `json:"lingkungan"`
	Rayon        string     `json:"rayon"`
	Status       string     `json:"status"`

	Pendidikan        string `json:"pendidikan"`
	Pekerjaan         string `json:"pekerjaan"`
	KesediaanMelayani string `json:"kesediaanMelayani"`
	PenerimaDiakonia  string `json:"penerimaDiakonia"`
	PunyaUsaha        string `json:"punyaUsaha"`
	SakitBaru         bool   `json:"sakitBaru"`
	BerobatRutin      bool   `json:"berobatRutin"`

	JumlahJiwa      int `json:"jumlahJiwa"`
	JumlahLaki      int `json:"jumlahLaki"`
	JumlahPerempuan int `json:"jumlahPerempuan"`
	JumlahSidi      int `json:"jumlahSidi"`

	Keahlian               []string `json:"keahlian"`
	Minat                  []string `json:"minat"`
	Aset                   []string `json:"aset"`
	SumberAir              []string `json:"sumberAir"`
	PenyakitKronis         []string `json:"penyakitKronis"`
	KendalaUsaha           []string `json:"kendalaUsaha"`
	KebutuhanPelatihan     []string `json:"kebutuhanPelatihan"`
	KebutuhanUsaha         []string `json:"kebutuhanUsaha"`
	AnggotaProfesional     []string `json:"anggotaProfesional"`
	PendidikanAnak         []string `json:"pendidikanAnak"`
	DisabilitasFisik       []string `json:"disabilitasFisik"`
	DisabilitasIntelektual []string `json:"disabilitasIntelektual"`
	DisabilitasMental      []string `json:"disabilitasMental"`
	DisabilitasSensorik    []string `json:"disabilitasSensorik"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
