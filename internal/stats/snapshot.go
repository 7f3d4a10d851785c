package stats

// Disability category buckets.
const (
	DisabilitasFisik       = "Fisik"
	DisabilitasIntelektual = "Intelektual"
	DisabilitasMental      = "Mental"
	DisabilitasSensorik    = "Sensorik"
)

// Snapshot is the dashboard payload: scalar KPIs plus every named
// distribution. It is recomputed from the warga table on each request and
// serialized whole; a failed read fails the entire snapshot instead of
// omitting fields.
type Snapshot struct {
	TotalKeluarga         int `json:"totalKeluarga"`
	TotalJiwa             int `json:"totalJiwa"`
	TotalSidi             int `json:"totalSidi"`
	TotalPekerjaAktif     int `json:"totalPekerjaAktif"`
	TotalKeahlian         int `json:"totalKeahlian"`
	TotalBersediaMelayani int `json:"totalBersediaMelayani"`
	TotalProfesional      int `json:"totalProfesional"`
	TotalPendidikanAnak   int `json:"totalPendidikanAnak"`
	TotalSakitBaru        int `json:"totalSakitBaru"`
	TotalBerobatRutin     int `json:"totalBerobatRutin"`

	Gender            *Distribution `json:"gender"`
	Lingkungan        *Distribution `json:"lingkungan"`
	Rayon             *Distribution `json:"rayon"`
	Pendidikan        *Distribution `json:"pendidikan"`
	KesediaanMelayani *Distribution `json:"kesediaanMelayani"`
	StatusUsaha       *Distribution `json:"statusUsaha"`
	PenerimaDiakonia  *Distribution `json:"penerimaDiakonia"`
	Keahlian          *Distribution `json:"keahlian"`
	Minat             *Distribution `json:"minat"`
	Aset              *Distribution `json:"aset"`
	SumberAir         *Distribution `json:"sumberAir"`
	Disabilitas       *Distribution `json:"disabilitas"`

	// Long-tail distributions, truncated to the five highest counts.
	PenyakitKronis     *Distribution `json:"penyakitKronis"`
	KendalaUsaha       *Distribution `json:"kendalaUsaha"`
	KebutuhanPelatihan *Distribution `json:"kebutuhanPelatihan"`
	KebutuhanUsaha     *Distribution `json:"kebutuhanUsaha"`
}
