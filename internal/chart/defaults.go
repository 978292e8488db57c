package chart

import "github.com/fiscasync/fiscaudit/internal/model"

// DefaultChart returns the built-in SYSCOHADA révisé reference chart: the nine
// class heads plus the principal two- and three-digit accounts. Sub-accounts
// not listed resolve to their closest listed prefix.
func DefaultChart() []model.ChartAccount {
	return syscohadaReviseChart()
}

func syscohadaReviseChart() []model.ChartAccount {
	passif := func(numero, libelle string, classe int, usage model.Usage, sectors ...string) model.ChartAccount {
		return model.ChartAccount{Numero: numero, Libelle: libelle, Classe: classe, Nature: model.NaturePassif, NormalSide: model.SideCredit, Usage: usage, Sectors: sectors}
	}
	actif := func(numero, libelle string, classe int, usage model.Usage, sectors ...string) model.ChartAccount {
		return model.ChartAccount{Numero: numero, Libelle: libelle, Classe: classe, Nature: model.NatureActif, NormalSide: model.SideDebit, Usage: usage, Sectors: sectors}
	}
	charge := func(numero, libelle string, classe int, usage model.Usage, sectors ...string) model.ChartAccount {
		return model.ChartAccount{Numero: numero, Libelle: libelle, Classe: classe, Nature: model.NatureCharge, NormalSide: model.SideDebit, Usage: usage, Sectors: sectors}
	}
	produit := func(numero, libelle string, classe int, usage model.Usage, sectors ...string) model.ChartAccount {
		return model.ChartAccount{Numero: numero, Libelle: libelle, Classe: classe, Nature: model.NatureProduit, NormalSide: model.SideCredit, Usage: usage, Sectors: sectors}
	}

	return []model.ChartAccount{
		// Class heads: last-resort resolution targets for any valid number.
		passif("1", "Comptes de ressources durables", 1, model.UsageMandatory),
		actif("2", "Comptes d'actif immobilisé", 2, model.UsageMandatory),
		actif("3", "Comptes de stocks", 3, model.UsageMandatory),
		actif("4", "Comptes de tiers", 4, model.UsageMandatory),
		actif("5", "Comptes de trésorerie", 5, model.UsageMandatory),
		charge("6", "Charges des activités ordinaires", 6, model.UsageMandatory),
		produit("7", "Produits des activités ordinaires", 7, model.UsageMandatory),
		{Numero: "8", Libelle: "Autres charges et autres produits (HAO)", Classe: 8, Nature: model.NatureSpecial, NormalSide: model.SideDebit, Usage: model.UsageOptional},
		{Numero: "9", Libelle: "Engagements et comptabilité analytique", Classe: 9, Nature: model.NatureSpecial, NormalSide: model.SideDebit, Usage: model.UsageOptional},

		// Classe 1 - ressources durables
		passif("10", "Capital et réserves", 1, model.UsageMandatory),
		passif("101", "Capital social", 1, model.UsageMandatory),
		passif("104", "Primes liées au capital social", 1, model.UsageOptional),
		passif("106", "Réserves", 1, model.UsageMandatory),
		passif("11", "Report à nouveau", 1, model.UsageMandatory),
		passif("12", "Résultat net de l'exercice", 1, model.UsageMandatory),
		passif("13", "Résultat net : subventions, écarts", 1, model.UsageOptional),
		passif("14", "Subventions d'investissement", 1, model.UsageOptional),
		passif("15", "Provisions réglementées et fonds assimilés", 1, model.UsageOptional),
		passif("16", "Emprunts et dettes assimilées", 1, model.UsageMandatory),
		passif("17", "Dettes de crédit-bail et contrats assimilés", 1, model.UsageOptional),
		passif("19", "Provisions pour risques et charges", 1, model.UsageOptional),

		// Classe 2 - actif immobilisé
		actif("20", "Charges immobilisées", 2, model.UsageOptional),
		actif("21", "Immobilisations incorporelles", 2, model.UsageMandatory),
		actif("22", "Terrains", 2, model.UsageMandatory),
		actif("23", "Bâtiments, installations techniques", 2, model.UsageMandatory),
		actif("24", "Matériel, mobilier et actifs biologiques", 2, model.UsageMandatory),
		actif("26", "Titres de participation", 2, model.UsageOptional),
		actif("27", "Autres immobilisations financières", 2, model.UsageOptional),
		{Numero: "28", Libelle: "Amortissements", Classe: 2, Nature: model.NatureActif, NormalSide: model.SideCredit, Usage: model.UsageMandatory},
		{Numero: "29", Libelle: "Provisions pour dépréciation des immobilisations", Classe: 2, Nature: model.NatureActif, NormalSide: model.SideCredit, Usage: model.UsageOptional},

		// Classe 3 - stocks
		actif("31", "Marchandises", 3, model.UsageMandatory, "COMMERCE", "DISTRIBUTION"),
		actif("32", "Matières premières et fournitures", 3, model.UsageMandatory, "INDUSTRIE", "PRODUCTION"),
		actif("33", "Autres approvisionnements", 3, model.UsageOptional),
		actif("34", "Produits en cours", 3, model.UsageOptional, "INDUSTRIE", "PRODUCTION"),
		actif("35", "Services en cours", 3, model.UsageOptional, "SERVICES"),
		actif("36", "Produits finis", 3, model.UsageMandatory, "INDUSTRIE", "PRODUCTION"),
		actif("38", "Stocks en cours de route", 3, model.UsageOptional),
		{Numero: "39", Libelle: "Dépréciations des stocks", Classe: 3, Nature: model.NatureActif, NormalSide: model.SideCredit, Usage: model.UsageOptional},

		// Classe 4 - tiers
		passif("40", "Fournisseurs et comptes rattachés", 4, model.UsageMandatory),
		passif("401", "Fournisseurs, dettes en compte", 4, model.UsageMandatory),
		{Numero: "409", Libelle: "Fournisseurs débiteurs", Classe: 4, Nature: model.NatureActif, NormalSide: model.SideDebit, Usage: model.UsageOptional},
		actif("41", "Clients et comptes rattachés", 4, model.UsageMandatory),
		actif("411", "Clients", 4, model.UsageMandatory),
		{Numero: "419", Libelle: "Clients créditeurs", Classe: 4, Nature: model.NaturePassif, NormalSide: model.SideCredit, Usage: model.UsageOptional},
		passif("42", "Personnel", 4, model.UsageMandatory),
		passif("43", "Organismes sociaux", 4, model.UsageMandatory),
		passif("44", "État et collectivités publiques", 4, model.UsageMandatory),
		passif("443", "État, TVA facturée", 4, model.UsageMandatory),
		{Numero: "445", Libelle: "État, TVA récupérable", Classe: 4, Nature: model.NatureActif, NormalSide: model.SideDebit, Usage: model.UsageMandatory},
		passif("46", "Associés et groupe", 4, model.UsageOptional),
		actif("47", "Débiteurs et créditeurs divers", 4, model.UsageOptional),
		actif("48", "Créances et dettes hors activités ordinaires", 4, model.UsageOptional),
		{Numero: "49", Libelle: "Dépréciations et provisions pour risques (tiers)", Classe: 4, Nature: model.NatureActif, NormalSide: model.SideCredit, Usage: model.UsageOptional},

		// Classe 5 - trésorerie
		actif("50", "Titres de placement", 5, model.UsageOptional),
		actif("51", "Valeurs à encaisser", 5, model.UsageOptional),
		actif("52", "Banques", 5, model.UsageMandatory),
		actif("53", "Établissements financiers et assimilés", 5, model.UsageOptional),
		actif("57", "Caisse", 5, model.UsageMandatory),
		actif("58", "Régies d'avances, accréditifs et virements internes", 5, model.UsageOptional),
		{Numero: "56", Libelle: "Banques, crédits de trésorerie", Classe: 5, Nature: model.NaturePassif, NormalSide: model.SideCredit, Usage: model.UsageOptional},
		{Numero: "59", Libelle: "Dépréciations des comptes de trésorerie", Classe: 5, Nature: model.NatureActif, NormalSide: model.SideCredit, Usage: model.UsageOptional},

		// Classe 6 - charges
		charge("60", "Achats et variations de stocks", 6, model.UsageMandatory),
		charge("601", "Achats de marchandises", 6, model.UsageMandatory, "COMMERCE"),
		charge("602", "Achats de matières premières", 6, model.UsageMandatory, "INDUSTRIE", "PRODUCTION"),
		charge("603", "Variations des stocks de biens achetés", 6, model.UsageMandatory),
		charge("605", "Autres achats", 6, model.UsageOptional),
		charge("61", "Transports", 6, model.UsageMandatory),
		charge("62", "Services extérieurs A", 6, model.UsageMandatory),
		charge("63", "Services extérieurs B", 6, model.UsageMandatory),
		charge("64", "Impôts et taxes", 6, model.UsageMandatory),
		charge("65", "Autres charges", 6, model.UsageOptional),
		charge("66", "Charges de personnel", 6, model.UsageMandatory),
		charge("67", "Frais financiers et charges assimilées", 6, model.UsageMandatory),
		charge("68", "Dotations aux amortissements", 6, model.UsageMandatory),
		charge("69", "Dotations aux provisions", 6, model.UsageOptional),

		// Classe 7 - produits
		produit("70", "Ventes", 7, model.UsageMandatory),
		produit("701", "Ventes de marchandises", 7, model.UsageMandatory, "COMMERCE"),
		produit("702", "Ventes de produits finis", 7, model.UsageMandatory, "INDUSTRIE", "PRODUCTION"),
		produit("706", "Services vendus", 7, model.UsageMandatory, "SERVICES"),
		produit("707", "Produits accessoires", 7, model.UsageOptional),
		produit("71", "Subventions d'exploitation", 7, model.UsageOptional),
		produit("72", "Production immobilisée", 7, model.UsageOptional),
		produit("73", "Variations des stocks de biens et services produits", 7, model.UsageOptional),
		produit("75", "Autres produits", 7, model.UsageOptional),
		produit("77", "Revenus financiers et produits assimilés", 7, model.UsageOptional),
		produit("78", "Transferts de charges", 7, model.UsageOptional),
		produit("79", "Reprises de provisions", 7, model.UsageOptional),

		// Classe 8 - HAO
		{Numero: "81", Libelle: "Valeurs comptables des cessions d'immobilisations", Classe: 8, Nature: model.NatureCharge, NormalSide: model.SideDebit, Usage: model.UsageOptional},
		{Numero: "82", Libelle: "Produits des cessions d'immobilisations", Classe: 8, Nature: model.NatureProduit, NormalSide: model.SideCredit, Usage: model.UsageOptional},
		{Numero: "83", Libelle: "Charges hors activités ordinaires", Classe: 8, Nature: model.NatureCharge, NormalSide: model.SideDebit, Usage: model.UsageOptional},
		{Numero: "84", Libelle: "Produits hors activités ordinaires", Classe: 8, Nature: model.NatureProduit, NormalSide: model.SideCredit, Usage: model.UsageOptional},
		{Numero: "87", Libelle: "Participations des travailleurs", Classe: 8, Nature: model.NatureCharge, NormalSide: model.SideDebit, Usage: model.UsageOptional},
		{Numero: "89", Libelle: "Impôts sur le résultat", Classe: 8, Nature: model.NatureCharge, NormalSide: model.SideDebit, Usage: model.UsageMandatory},

		// Classe 9 - engagements et analytique
		{Numero: "90", Libelle: "Engagements obtenus et accordés", Classe: 9, Nature: model.NatureSpecial, NormalSide: model.SideDebit, Usage: model.UsageOptional},
		{Numero: "98", Libelle: "Comptes analytiques de résultats", Classe: 9, Nature: model.NatureSpecial, NormalSide: model.SideDebit, Usage: model.UsageForbidden},
	}
}
