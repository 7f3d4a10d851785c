package repository

// warga column names. Aggregate reads are parameterized by column, so the
// service layer references these constants instead of raw strings; nothing
// user-supplied ever reaches an identifier position.
const (
	ColGender           = "gender"
	ColLingkungan       = "lingkungan"
	ColRayon            = "rayon"
	ColPendidikan       = "pendidikan"
	ColPekerjaan        = "pekerjaan"
	ColKesediaan        = "kesediaan_melayani"
	ColPenerimaDiakonia = "penerima_diakonia"
	ColPunyaUsaha       = "punya_usaha"
	ColSakitBaru        = "sakit_baru"
	ColBerobatRutin     = "berobat_rutin"

	ColJumlahJiwa      = "jumlah_jiwa"
	ColJumlahLaki      = "jumlah_laki"
	ColJumlahPerempuan = "jumlah_perempuan"
	ColJumlahSidi      = "jumlah_sidi"

	ColKeahlian               = "keahlian"
	ColMinat                  = "minat"
	ColAset                   = "aset"
	ColSumberAir              = "sumber_air"
	ColPenyakitKronis         = "penyakit_kronis"
	ColKendalaUsaha           = "kendala_usaha"
	ColKebutuhanPelatihan     = "kebutuhan_pelatihan"
	ColKebutuhanUsaha         = "kebutuhan_usaha"
	ColAnggotaProfesional     = "anggota_profesional"
	ColPendidikanAnak         = "pendidikan_anak"
	ColDisabilitasFisik       = "disabilitas_fisik"
	ColDisabilitasIntelektual = "disabilitas_intelektual"
	ColDisabilitasMental      = "disabilitas_mental"
	ColDisabilitasSensorik    = "disabilitas_sensorik"
)
