/*
Package comments generates review draft texts from per-sector templates.

This is a static template substitution utility: it picks a template for the
sector, fills in {business} and a random keyword, and applies a tone pass.
Randomness is injected so tests are deterministic.
*/
package comments

import (
	"math/rand"
	"strings"

	"github.com/reviewcrew/review-engine/domain"
)

type Tone string

const (
	ToneFormal  Tone = "formal"
	ToneCasual  Tone = "casual"
	ToneExcited Tone = "excited"
)

var templates = map[domain.Sector][]string{
	domain.SectorRestaurant: {
		"Yemekler harikaydı, özellikle {keyword} denemenizi öneririm.",
		"{business} lezzet konusunda bizi şaşırtmadı, her şey çok tazeydi.",
		"Servis hızı ve {keyword} kalitesi muazzamdı.",
		"Arkadaşlarımla geldik ve {keyword} tadına bayıldık.",
		"Mekan çok temiz, yemekler sıcak geldi. {business} favorimiz oldu.",
	},
	domain.SectorCafe: {
		"Kahveleri çok taze, ortam çalışmak için uygun.",
		"{business} atmosferi çok güzel, {keyword} mutlaka denenmeli.",
		"Tatlılar ve {keyword} uyumu harika.",
		"Arkadaşlarla sohbet için mükemmel bir yer.",
		"Personel güler yüzlü, servis hızlı.",
	},
	domain.SectorHealth: {
		"{business} ekibi çok ilgiliydi, her aşamada bilgilendirdiler.",
		"Hijyen kurallarına çok dikkat ediliyor, {keyword} konusunda uzmanlar.",
		"Randevu saatine tam uyuldu, bekletilmedim.",
		"Doktorun ilgisi ve {keyword} açıklamaları güven verdi.",
		"Gönül rahatlığıyla tercih edebilirsiniz.",
	},
	domain.SectorBeauty: {
		"{business} işini sanat gibi yapıyor, {keyword} işleminden çok memnun kaldım.",
		"Kullanılan ürünler kaliteli, sonuç mükemmel.",
		"Saç kesimi ve {keyword} tam istediğim gibi oldu.",
		"Çalışanlar çok profesyonel ve güler yüzlü.",
		"Kendinizi şımartmak için doğru adres.",
	},
	domain.SectorHotel: {
		"Odalar tertemizdi, {keyword} hizmeti kusursuzdu.",
		"{business} konumu ve manzarası muhteşem.",
		"Kahvaltı çeşitleri ve {keyword} çok iyiydi.",
		"Personel her konuda yardımcı oldu.",
		"Tekrar gelmeyi düşünüyoruz, çok memnun kaldık.",
	},
	domain.SectorGeneral: {
		"{business} işini profesyonelce yapıyor, {keyword} konusunda çok iyiler.",
		"İletişim güçlü, sorun çözme odaklılar.",
		"Zamanında teslimat ve kaliteli işçilik.",
		"Kesinlikle tavsiye ederim.",
	},
}

// Generator produces review drafts from the template bank.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate returns count drafts for the sector. An unknown sector falls back
// to the general template bank; an empty keyword list substitutes "hizmet".
func (g *Generator) Generate(sector domain.Sector, businessName string, keywords []string, count int, tone Tone) []string {
	bank, ok := templates[sector]
	if !ok {
		bank = templates[domain.SectorGeneral]
	}

	name := businessName
	if name == "" {
		name = "İşletme"
	}

	results := make([]string, 0, count)
	for i := 0; i < count; i++ {
		text := bank[g.rng.Intn(len(bank))]

		keyword := "hizmet"
		if len(keywords) > 0 {
			keyword = keywords[g.rng.Intn(len(keywords))]
		}

		text = strings.ReplaceAll(text, "{business}", name)
		text = strings.ReplaceAll(text, "{keyword}", keyword)

		switch tone {
		case ToneExcited:
			text = strings.ReplaceAll(text, ".", "!") + " 😍"
		case ToneCasual:
			text = strings.ToLower(text)
		}

		// Occasional filler so repeated templates read less uniform.
		if g.rng.Float64() > 0.5 {
			text += " Teşekkürler."
		} else if g.rng.Float64() > 0.7 {
			text = "Gerçekten " + lowerFirst(text)
		}

		results = append(results, text)
	}
	return results
}

func lowerFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	head := strings.ToLower(string(r[0]))
	return head + string(r[1:])
}
