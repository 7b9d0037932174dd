// internal/notify/messages.go
package notify

// Localized messages shown when the backend sends no detail, or after a
// successful action.
const (
	LoginSucceeded    = "Giriş başarılı!"
	LoginFailed       = "Giriş başarısız"
	RegisterFailed    = "Kayıt başarısız"
	RegisterSucceeded = "Kayıt başarılı!"
	SessionExpired    = "Oturumunuzun süresi doldu, lütfen tekrar giriş yapın"
	Unreachable       = "Sunucuya ulaşılamadı"

	StatsLoadFailed     = "İstatistikler yüklenemedi"
	DevicesLoadFailed   = "Cihazlar yüklenemedi"
	DeviceLoadFailed    = "Cihaz bilgileri yüklenemedi"
	FaultsLoadFailed    = "Arızalar yüklenemedi"
	TransfersLoadFailed = "Transfer kayıtları yüklenemedi"
	UsersLoadFailed     = "Kullanıcılar yüklenemedi"
	ReportsLoadFailed   = "Raporlar yüklenemedi"

	DeviceAdded      = "Cihaz başarıyla eklendi"
	DeviceAddFailed  = "Cihaz eklenemedi"
	FaultReported    = "Arıza başarıyla bildirildi"
	FaultReportFail  = "Arıza bildirilemedi"
	FaultAssigned    = "Arıza atandı"
	AssignFailed     = "Atama başarısız"
	RepairStarted    = "Onarım başlatıldı"
	StartFailed      = "Onarım başlatılamadı"
	RepairEnded      = "Onarım tamamlandı"
	EndFailed        = "Onarım tamamlanamadı"
	FaultConfirmed   = "Onarım onaylandı"
	ConfirmFailed    = "Onaylama başarısız"
	ActionNotAllowed = "Bu işlem için yetkiniz yok"

	TransferRequested     = "Transfer talebi oluşturuldu"
	TransferRequestFailed = "Transfer talebi oluşturulamadı"
	TransferApproved      = "Transfer onaylandı"
	TransferApproveFailed = "Transfer onaylanamadı"
	TransferRejected      = "Transfer reddedildi"
	TransferRejectFailed  = "Transfer reddedilemedi"

	ReportDownloaded     = "Rapor indirildi"
	ReportDownloadFailed = "Rapor indirilemedi"

	FillAllFields       = "Lütfen tüm alanları doldurun"
	NotesTooShort       = "Onarım notları en az 20 karakter olmalıdır"
	SelectTechnician    = "Lütfen bir teknisyen seçin"
	SelectCategory      = "Lütfen onarım kategorisi seçin"
	RejectionReasonReq  = "Ret nedeni girilmelidir"
	InvalidReportType   = "Geçersiz rapor türü"
	InvalidOperatingHrs = "Çalışma saati sıfırdan büyük olmalıdır"
)
